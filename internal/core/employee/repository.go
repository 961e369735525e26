package employee

import (
	"context"

	"github.com/ogurasousui/hr-records-api/internal/core/skill"
)

// Repository は社員永続化の抽象です。
// 複数文にまたがる書き込みは呼び出し側がトランザクションで囲みます。
type Repository interface {
	// Create は社員行を挿入し、採番された ID を返します。
	Create(ctx context.Context, employee *Employee) (int64, error)
	// Update は可変カラムを上書きします。対象行が無ければ ErrEmployeeNotFound を返します。
	Update(ctx context.Context, employee *Employee) error
	// Delete はスキル関連付けを消してから社員行を削除します。
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	// List は検索条件に一致する総件数と、指定ページの社員を返します。
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, int, error)
	// ReplaceSkills は社員のスキル関連付けを skillIDs で置き換えます。
	ReplaceSkills(ctx context.Context, employeeID int64, skillIDs []int64) error
	// AddSkill はスキル関連付けを追加します。既に関連付け済みなら何もしません。
	AddSkill(ctx context.Context, employeeID, skillID int64) error
	// ListSkills は社員 ID ごとのスキルを名前順でまとめて取得します。
	ListSkills(ctx context.Context, employeeIDs []int64) (map[int64][]*skill.Skill, error)
	ListProjects(ctx context.Context, employeeID int64) ([]*Project, error)
}

// ListEmployeesFilter は一覧取得用フィルタです。
type ListEmployeesFilter struct {
	Search     string
	SortBy     SortField
	Descending bool
	Limit      int
	Offset     int
}
