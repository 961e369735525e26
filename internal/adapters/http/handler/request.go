package handler

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/hr-records-api/internal/core/employee"
	"github.com/shopspring/decimal"
)

const requiredFieldsMessage = "First name, last name, email, and department are required"

// optionalNumber は null・空文字・数値・数値文字列のいずれも受け付ける JSON 数値です。
type optionalNumber struct {
	Value *decimal.Decimal
}

func (n *optionalNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		n.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("invalid number %s", trimmed)
	}
	n.Value = &d
	return nil
}

type employeeRequest struct {
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	Phone        *string        `json:"phone"`
	DepartmentID optionalNumber `json:"department_id"`
	Position     *string        `json:"position"`
	Salary       optionalNumber `json:"salary"`
	HireDate     *string        `json:"hire_date"`
	Status       *string        `json:"status"`
	Skills       []string       `json:"skills"`
}

func (r employeeRequest) hasRequiredFields() bool {
	return strings.TrimSpace(r.FirstName) != "" &&
		strings.TrimSpace(r.LastName) != "" &&
		strings.TrimSpace(r.Email) != "" &&
		r.DepartmentID.Value != nil
}

func (r employeeRequest) toInput() (employee.EmployeeInput, error) {
	departmentID, err := wholeNumber(r.DepartmentID.Value)
	if err != nil {
		return employee.EmployeeInput{}, employee.ErrInvalidDepartmentID
	}

	hireDate, err := parseDate(r.HireDate)
	if err != nil {
		return employee.EmployeeInput{}, fmt.Errorf("%w: %v", employee.ErrInvalidHireDate, err)
	}

	var status *employee.Status
	if r.Status != nil && strings.TrimSpace(*r.Status) != "" {
		s := employee.Status(strings.TrimSpace(*r.Status))
		status = &s
	}

	return employee.EmployeeInput{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		DepartmentID: departmentID,
		Position:     r.Position,
		Salary:       r.Salary.Value,
		HireDate:     hireDate,
		Status:       status,
		Skills:       r.Skills,
	}, nil
}

type addSkillRequest struct {
	SkillID optionalNumber `json:"skill_id"`
	Name    string         `json:"name"`
}

func (r addSkillRequest) toInput() (employee.AddSkillInput, error) {
	skillID, err := wholeNumber(r.SkillID.Value)
	if err != nil {
		return employee.AddSkillInput{}, employee.ErrInvalidSkill
	}
	return employee.AddSkillInput{SkillID: skillID, Name: r.Name}, nil
}

func wholeNumber(d *decimal.Decimal) (int64, error) {
	if d == nil {
		return 0, nil
	}
	if !d.IsInteger() || d.Sign() < 0 || d.GreaterThan(decimal.NewFromInt(1<<62)) {
		return 0, fmt.Errorf("%s is not a valid id", d.String())
	}
	return d.IntPart(), nil
}

// parseDate は "2006-01-02" を優先し、RFC3339 形式も受け付けます。空文字は未指定です。
func parseDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, trimmed); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, fmt.Errorf("date must be formatted as %s", dateLayout)
	}
	return &t, nil
}
