package handler

import (
	"strconv"
	"time"

	"github.com/ogurasousui/hr-records-api/internal/core/department"
	"github.com/ogurasousui/hr-records-api/internal/core/employee"
	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type employeeResponse struct {
	ID             int64            `json:"id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Phone          *string          `json:"phone"`
	DepartmentID   int64            `json:"department_id"`
	DepartmentName *string          `json:"department_name"`
	Position       *string          `json:"position"`
	Salary         *decimal.Decimal `json:"salary"`
	HireDate       *string          `json:"hire_date"`
	Status         string           `json:"status"`
	Skills         []string         `json:"skills"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type paginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type listEmployeesResponse struct {
	Data       []employeeResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type skillResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type departmentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type projectResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	Status      *string          `json:"status"`
	Budget      *decimal.Decimal `json:"budget"`
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	return employeeResponse{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		Position:       e.Position,
		Salary:         decimalPtr(e.Salary),
		HireDate:       formatDate(e.HireDate),
		Status:         string(e.Status),
		Skills:         skills,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toListEmployeesResponse(result *employee.ListEmployeesResult) listEmployeesResponse {
	data := make([]employeeResponse, 0, len(result.Employees))
	for _, e := range result.Employees {
		data = append(data, toEmployeeResponse(e))
	}
	return listEmployeesResponse{
		Data: data,
		Pagination: paginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}

func toSkillResponses(skills []*skill.Skill) []skillResponse {
	out := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

func toDepartmentResponses(departments []*department.Department) []departmentResponse {
	out := make([]departmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, departmentResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt})
	}
	return out
}

func toProjectResponses(projects []*employee.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			StartDate:   formatDate(p.StartDate),
			EndDate:     formatDate(p.EndDate),
			Status:      p.Status,
			Budget:      decimalPtr(p.Budget),
		})
	}
	return out
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
