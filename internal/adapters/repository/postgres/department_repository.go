package postgres

import (
	"context"

	"github.com/ogurasousui/hr-records-api/internal/core/department"
	pgdb "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
)

// DepartmentRepository は PostgreSQL を利用した部署参照の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// List はすべての部署を名前順に返します。
func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, created_at
          FROM departments
         ORDER BY name
    `)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	departments := make([]*department.Department, 0)
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		departments = append(departments, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return departments, nil
}
