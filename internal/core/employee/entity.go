package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status は社員の在籍状態を表します。
type Status string

const (
	StatusActive     Status = "Active"
	StatusOnLeave    Status = "On Leave"
	StatusTerminated Status = "Terminated"
)

// Employee は社員エンティティです。
// Skills はスキル名の集合で、関連付けは更新のたびに丸ごと置き換えられます。
type Employee struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	DepartmentID   int64
	DepartmentName *string
	Position       *string
	Salary         decimal.NullDecimal
	HireDate       *time.Time
	Status         Status
	Skills         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName は "名 姓" 形式の氏名を返します。
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Project は社員が参加しているプロジェクトです。
type Project struct {
	ID          int64
	Name        string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
	Budget      decimal.NullDecimal
}
