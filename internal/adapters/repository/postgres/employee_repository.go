package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-records-api/internal/core/employee"
	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	pgdb "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	employeesEmailKey          = "employees_email_key"
	employeesDepartmentFkey    = "employees_department_id_fkey"
	employeesSalaryCheck       = "employees_salary_check"
	employeesStatusCheck       = "employees_status_check"
	employeeSkillsEmployeeFkey = "employee_skills_employee_id_fkey"
	employeeSkillsSkillFkey    = "employee_skills_skill_id_fkey"
)

const employeeSelectColumns = `
        SELECT e.id,
               e.first_name,
               e.last_name,
               e.email,
               e.phone,
               e.department_id,
               d.name,
               e.position,
               e.salary,
               e.hire_date,
               e.status,
               e.created_at,
               e.updated_at
          FROM employees e
          LEFT JOIN departments d ON d.id = e.department_id`

// ORDER BY に埋め込めるのはこの表にある式だけです。
var employeeSortColumns = map[employee.SortField]string{
	employee.SortByID:             "e.id",
	employee.SortByFirstName:      "e.first_name",
	employee.SortByLastName:       "e.last_name",
	employee.SortByFullName:       "e.first_name || ' ' || e.last_name",
	employee.SortByEmail:          "e.email",
	employee.SortByDepartmentName: "d.name",
	employee.SortByPosition:       "e.position",
	employee.SortBySalary:         "e.salary",
	employee.SortByHireDate:       "e.hire_date",
	employee.SortByStatus:         "e.status",
	employee.SortByCreatedAt:      "e.created_at",
}

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成し、採番された ID を返します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (first_name, last_name, email, phone, department_id, position, salary, hire_date, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Phone,
		e.DepartmentID,
		e.Position,
		nullableDecimal(e.Salary),
		nullableDate(e.HireDate),
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, translateEmployeePgError(err)
	}
	return id, nil
}

// Update は社員の可変カラムを上書きします。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE employees
           SET first_name = $1,
               last_name = $2,
               email = $3,
               phone = $4,
               department_id = $5,
               position = $6,
               salary = $7,
               hire_date = $8,
               status = $9,
               updated_at = $10
         WHERE id = $11
    `,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Phone,
		e.DepartmentID,
		e.Position,
		nullableDecimal(e.Salary),
		nullableDate(e.HireDate),
		string(e.Status),
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete はスキル関連付けを削除してから社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM employee_skills WHERE employee_id = $1`, id); err != nil {
		return translateEmployeePgError(err)
	}

	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得します。スキルは含みません。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, employeeSelectColumns+`
         WHERE e.id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は検索条件に一致する総件数と指定ページの社員を返します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, int, error) {
	if filter.Limit <= 0 {
		return nil, 0, employee.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, 0, employee.ErrInvalidPage
	}

	sortColumn, ok := employeeSortColumns[filter.SortBy]
	if !ok {
		if filter.SortBy != "" {
			return nil, 0, employee.ErrInvalidSortField
		}
		sortColumn = employeeSortColumns[employee.SortByID]
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	orderBy := sortColumn + " " + direction
	if sortColumn != "e.id" {
		orderBy += ", e.id ASC"
	}

	args := make([]any, 0, 3)
	whereClause := ""
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+escapeLike(term)+"%")
		whereClause = `
         WHERE (e.first_name ILIKE $1 OR e.last_name ILIKE $1 OR d.name ILIKE $1 OR e.position ILIKE $1)`
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var total int64
	countQuery := `
        SELECT COUNT(*)
          FROM employees e
          LEFT JOIN departments d ON d.id = e.department_id` + whereClause
	if err := exec.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateEmployeePgError(err)
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := employeeSelectColumns + whereClause + `
         ORDER BY ` + orderBy + `
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateEmployeePgError(err)
	}

	return employees, int(total), nil
}

// ReplaceSkills は社員のスキル関連付けをすべて削除し、skillIDs で作り直します。
func (r *EmployeeRepository) ReplaceSkills(ctx context.Context, employeeID int64, skillIDs []int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM employee_skills WHERE employee_id = $1`, employeeID); err != nil {
		return translateEmployeePgError(err)
	}
	if len(skillIDs) == 0 {
		return nil
	}

	if _, err := exec.Exec(ctx, `
        INSERT INTO employee_skills (employee_id, skill_id)
        SELECT $1, unnest($2::bigint[])
        ON CONFLICT DO NOTHING
    `, employeeID, skillIDs); err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

// AddSkill はスキル関連付けを追加します。既に存在すれば何もしません。
func (r *EmployeeRepository) AddSkill(ctx context.Context, employeeID, skillID int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO employee_skills (employee_id, skill_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `, employeeID, skillID); err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

// ListSkills は社員ごとのスキルを一度のクエリで取得します。
func (r *EmployeeRepository) ListSkills(ctx context.Context, employeeIDs []int64) (map[int64][]*skill.Skill, error) {
	result := make(map[int64][]*skill.Skill, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT es.employee_id,
               s.id,
               s.name
          FROM employee_skills es
          JOIN skills s ON s.id = es.skill_id
         WHERE es.employee_id = ANY($1)
         ORDER BY es.employee_id, s.name
    `, employeeIDs)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			employeeID int64
			s          skill.Skill
		)
		if err := rows.Scan(&employeeID, &s.ID, &s.Name); err != nil {
			return nil, translateEmployeePgError(err)
		}
		result[employeeID] = append(result[employeeID], &s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return result, nil
}

// ListProjects は社員が参加しているプロジェクトを開始日の新しい順に返します。
func (r *EmployeeRepository) ListProjects(ctx context.Context, employeeID int64) ([]*employee.Project, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT p.id,
               p.name,
               p.description,
               p.start_date,
               p.end_date,
               p.status,
               p.budget
          FROM projects p
          JOIN employee_projects ep ON ep.project_id = p.id
         WHERE ep.employee_id = $1
         ORDER BY p.start_date DESC NULLS LAST, p.id
    `, employeeID)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	projects := make([]*employee.Project, 0)
	for rows.Next() {
		var p employee.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.Status, &p.Budget); err != nil {
			return nil, translateEmployeePgError(err)
		}
		p.StartDate = dateOnly(p.StartDate)
		p.EndDate = dateOnly(p.EndDate)
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return projects, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e        employee.Employee
		status   string
		hireDate *time.Time
	)

	if err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.DepartmentID,
		&e.DepartmentName,
		&e.Position,
		&e.Salary,
		&hireDate,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.Status = employee.Status(status)
	e.HireDate = dateOnly(hireDate)
	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgdb.UniqueViolationCode:
			if pgErr.ConstraintName == employeesEmailKey {
				return employee.ErrEmailAlreadyExists
			}
			return employee.ErrDuplicateEntry
		case pgdb.ForeignKeyViolationCode:
			switch pgErr.ConstraintName {
			case employeesDepartmentFkey:
				return employee.ErrDepartmentNotFound
			case employeeSkillsEmployeeFkey:
				return employee.ErrEmployeeNotFound
			case employeeSkillsSkillFkey:
				return skill.ErrSkillNotFound
			default:
				return employee.ErrInvalidReference
			}
		case pgdb.CheckViolationCode:
			switch pgErr.ConstraintName {
			case employeesSalaryCheck:
				return employee.ErrInvalidSalary
			case employeesStatusCheck:
				return employee.ErrInvalidStatus
			}
		case pgdb.StringDataRightTruncation:
			return employee.ErrValueTooLong
		case pgdb.NumericValueOutOfRangeCode:
			return employee.ErrInvalidSalary
		}
	}

	return pgdb.WrapTransient(err)
}

// escapeLike は LIKE パターン中のワイルドカードをリテラルとして扱えるようにします。
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func nullableDecimal(value decimal.NullDecimal) any {
	if !value.Valid {
		return nil
	}
	return value.Decimal
}

func nullableDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOnly(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	t := value.UTC()
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &date
}
