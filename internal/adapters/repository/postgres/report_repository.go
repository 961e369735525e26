package postgres

import (
	"context"
	"time"

	"github.com/ogurasousui/hr-records-api/internal/core/report"
	pgdb "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
)

// 給与分析の母集団です。状態未設定の行も在籍扱いにします。
const salaryPopulation = `salary > 0 AND (status IS NULL OR status = 'Active')`

// ReportRepository は PostgreSQL 上の集計クエリです。
type ReportRepository struct {
	pool pgdb.Queryer
}

// NewReportRepository は ReportRepository を生成します。
func NewReportRepository(pool pgdb.Queryer) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var n int64
	if err := exec.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, pgdb.WrapTransient(err)
	}
	return n, nil
}

func (r *ReportRepository) optionalFloat(ctx context.Context, query string, args ...any) (*float64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var v *float64
	if err := exec.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return v, nil
}

// CountEmployees は全社員数を返します。
func (r *ReportRepository) CountEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees`)
}

// CountDepartments は部署数を返します。
func (r *ReportRepository) CountDepartments(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM departments`)
}

// CountHiredSince は since 以降に入社した社員数を返します。
func (r *ReportRepository) CountHiredSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE hire_date >= $1`, since)
}

// CountHiredBefore は before より前に入社した社員数を返します。
func (r *ReportRepository) CountHiredBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE hire_date < $1`, before)
}

// AveragePositiveSalary は給与が正の社員の平均給与を返します。
func (r *ReportRepository) AveragePositiveSalary(ctx context.Context) (*float64, error) {
	return r.optionalFloat(ctx, `SELECT AVG(salary)::float8 FROM employees WHERE salary > 0`)
}

// RecentHires は入社日の新しい順に limit 件を返します。
func (r *ReportRepository) RecentHires(ctx context.Context, limit int) ([]report.HireRecord, error) {
	return r.hireRecords(ctx, `
        SELECT id, first_name || ' ' || last_name, hire_date
          FROM employees
         WHERE hire_date IS NOT NULL
         ORDER BY hire_date DESC, id DESC
         LIMIT $1
    `, limit)
}

// ListHireDates は入社日のある在籍社員を返します。
func (r *ReportRepository) ListHireDates(ctx context.Context) ([]report.HireRecord, error) {
	return r.hireRecords(ctx, `
        SELECT id, first_name || ' ' || last_name, hire_date
          FROM employees
         WHERE hire_date IS NOT NULL
           AND status = 'Active'
         ORDER BY id
    `)
}

func (r *ReportRepository) hireRecords(ctx context.Context, query string, args ...any) ([]report.HireRecord, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	records := make([]report.HireRecord, 0)
	for rows.Next() {
		var rec report.HireRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.HireDate); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		rec.HireDate = *dateOnly(&rec.HireDate)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return records, nil
}

// ActiveHeadcountByDepartment は在籍者数の多い順に limit 部署を返します。
func (r *ReportRepository) ActiveHeadcountByDepartment(ctx context.Context, limit int) ([]report.DepartmentHeadcount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT d.name,
               COUNT(e.id),
               COALESCE(AVG(e.salary), 0)::float8
          FROM departments d
          LEFT JOIN employees e ON e.department_id = d.id AND e.status = 'Active'
         GROUP BY d.id, d.name
         ORDER BY COUNT(e.id) DESC, d.name
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.DepartmentHeadcount, 0)
	for rows.Next() {
		var h report.DepartmentHeadcount
		if err := rows.Scan(&h.Department, &h.EmployeeCount, &h.AvgSalary); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// DepartmentStats は部署ごとの給与集計とプロジェクト数を返します。
func (r *ReportRepository) DepartmentStats(ctx context.Context) ([]report.DepartmentStat, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT d.id,
               d.name,
               COUNT(e.id),
               COALESCE(AVG(e.salary), 0)::float8,
               COALESCE(MIN(e.salary), 0)::float8,
               COALESCE(MAX(e.salary), 0)::float8,
               COALESCE(SUM(e.salary), 0)::float8,
               (SELECT COUNT(*) FROM projects p WHERE p.department_id = d.id)
          FROM departments d
          LEFT JOIN employees e ON e.department_id = d.id
         GROUP BY d.id, d.name
         ORDER BY d.name
    `)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.DepartmentStat, 0)
	for rows.Next() {
		var s report.DepartmentStat
		if err := rows.Scan(&s.ID, &s.Name, &s.EmployeeCount, &s.AvgSalary, &s.MinSalary, &s.MaxSalary, &s.TotalSalary, &s.ProjectCount); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// HiresByMonth は since 以降の入社数を月初日ごとに返します。
func (r *ReportRepository) HiresByMonth(ctx context.Context, since time.Time) ([]report.MonthCount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT date_trunc('month', hire_date)::date AS month,
               COUNT(*)
          FROM employees
         WHERE hire_date >= $1
         GROUP BY 1
         ORDER BY 1
    `, since)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.MonthCount, 0)
	for rows.Next() {
		var mc report.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// SalarySummary は給与分析の母集団の基本統計量を返します。標準偏差は母標準偏差です。
func (r *ReportRepository) SalarySummary(ctx context.Context) (report.SalarySummary, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var s report.SalarySummary
	err := exec.QueryRow(ctx, `
        SELECT COUNT(*),
               COALESCE(AVG(salary), 0)::float8,
               COALESCE(MIN(salary), 0)::float8,
               COALESCE(MAX(salary), 0)::float8,
               COALESCE(STDDEV_POP(salary), 0)::float8,
               COALESCE(SUM(salary), 0)::float8
          FROM employees
         WHERE `+salaryPopulation).Scan(&s.Count, &s.Avg, &s.Min, &s.Max, &s.Stddev, &s.Total)
	if err != nil {
		return report.SalarySummary{}, pgdb.WrapTransient(err)
	}
	return s, nil
}

// MedianSalaries は中央の順位にある給与を返します。順位と母集団の件数は同じ文で求めます。
func (r *ReportRepository) MedianSalaries(ctx context.Context) ([]float64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT ranked.salary::float8
          FROM (
                SELECT salary,
                       ROW_NUMBER() OVER (ORDER BY salary, id) AS rn,
                       COUNT(*) OVER () AS cnt
                  FROM employees
                 WHERE `+salaryPopulation+`
               ) ranked
         WHERE ranked.rn IN ((ranked.cnt + 1) / 2, (ranked.cnt + 2) / 2)
         ORDER BY ranked.rn
    `)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	values := make([]float64, 0, 2)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return values, nil
}

// SalaryBuckets は width_bucket で給与を区間番号に振り分けて数えます。
// 区間番号 0 は最初の境界未満、len(bounds) は最後の境界以上です。
func (r *ReportRepository) SalaryBuckets(ctx context.Context, bounds []float64) (map[int]int64, error) {
	return r.buckets(ctx, `
        SELECT width_bucket(salary::float8, $1::float8[]),
               COUNT(*)
          FROM employees
         WHERE `+salaryPopulation+`
         GROUP BY 1
    `, bounds)
}

// TenureBuckets は today 時点の勤続年数を bounds で区切って数えます。
func (r *ReportRepository) TenureBuckets(ctx context.Context, today time.Time, bounds []float64) (map[int]int64, error) {
	return r.buckets(ctx, `
        SELECT width_bucket(($1::date - hire_date)::float8 / 365, $2::float8[]),
               COUNT(*)
          FROM employees
         WHERE hire_date IS NOT NULL
         GROUP BY 1
    `, today, bounds)
}

func (r *ReportRepository) buckets(ctx context.Context, query string, args ...any) (map[int]int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var (
			bucket int
			n      int64
		)
		if err := rows.Scan(&bucket, &n); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		counts[bucket] += n
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return counts, nil
}

// DepartmentSalaries は部署ごとの平均給与を高い順に返します。
func (r *ReportRepository) DepartmentSalaries(ctx context.Context) ([]report.DepartmentSalary, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT d.name,
               AVG(e.salary)::float8,
               COUNT(e.id)
          FROM employees e
          JOIN departments d ON d.id = e.department_id
         WHERE e.salary > 0
           AND (e.status IS NULL OR e.status = 'Active')
         GROUP BY d.id, d.name
         ORDER BY AVG(e.salary) DESC, d.name
    `)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.DepartmentSalary, 0)
	for rows.Next() {
		var s report.DepartmentSalary
		if err := rows.Scan(&s.Department, &s.AvgSalary, &s.EmployeeCount); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// CountActiveEmployees は在籍中の社員数を返します。
func (r *ReportRepository) CountActiveEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'Active'`)
}

// TopSkills は在籍者の保有数が多いスキルを limit 件返します。
func (r *ReportRepository) TopSkills(ctx context.Context, limit int) ([]report.SkillCount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT s.name,
               COUNT(*)
          FROM employee_skills es
          JOIN skills s ON s.id = es.skill_id
          JOIN employees e ON e.id = es.employee_id
         WHERE e.status = 'Active'
         GROUP BY s.id, s.name
         ORDER BY COUNT(*) DESC, s.name
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.SkillCount, 0)
	for rows.Next() {
		var sc report.SkillCount
		if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// SkillsByDepartment は部署とスキルの組ごとの在籍保有者数を返します。
func (r *ReportRepository) SkillsByDepartment(ctx context.Context) ([]report.DepartmentSkill, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT d.name,
               s.name,
               COUNT(*)
          FROM employee_skills es
          JOIN skills s ON s.id = es.skill_id
          JOIN employees e ON e.id = es.employee_id
          JOIN departments d ON d.id = e.department_id
         WHERE e.status = 'Active'
         GROUP BY d.name, s.name
         ORDER BY d.name, COUNT(*) DESC, s.name
    `)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.DepartmentSkill, 0)
	for rows.Next() {
		var ds report.DepartmentSkill
		if err := rows.Scan(&ds.Department, &ds.Skill, &ds.Count); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// AverageTenureYears は today 時点の平均勤続年数を返します。
func (r *ReportRepository) AverageTenureYears(ctx context.Context, today time.Time) (*float64, error) {
	return r.optionalFloat(ctx, `
        SELECT AVG(($1::date - hire_date)::float8 / 365)
          FROM employees
         WHERE hire_date IS NOT NULL
    `, today)
}

// DepartmentGrowth は since の前後で部署ごとの人数を数えます。
func (r *ReportRepository) DepartmentGrowth(ctx context.Context, since time.Time) ([]report.DepartmentGrowthCount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT d.id,
               d.name,
               COUNT(e.id) FILTER (WHERE e.hire_date >= $1),
               COUNT(e.id) FILTER (WHERE e.hire_date < $1),
               COUNT(e.id)
          FROM departments d
          LEFT JOIN employees e ON e.department_id = d.id
         GROUP BY d.id, d.name
         ORDER BY d.name
    `, since)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.DepartmentGrowthCount, 0)
	for rows.Next() {
		var g report.DepartmentGrowthCount
		if err := rows.Scan(&g.ID, &g.Department, &g.RecentHires, &g.PriorEmployees, &g.TotalEmployees); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}

// DepartmentActivity は部署ごとの総人数と since 以降の入社数を返します。
func (r *ReportRepository) DepartmentActivity(ctx context.Context, since time.Time) ([]report.DepartmentActivity, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT d.id,
               d.name,
               COUNT(e.id),
               COUNT(e.id) FILTER (WHERE e.hire_date >= $1)
          FROM departments d
          LEFT JOIN employees e ON e.department_id = d.id
         GROUP BY d.id, d.name
         ORDER BY 4 DESC, d.name
    `, since)
	if err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	defer rows.Close()

	out := make([]report.DepartmentActivity, 0)
	for rows.Next() {
		var a report.DepartmentActivity
		if err := rows.Scan(&a.ID, &a.Department, &a.TotalEmployees, &a.RecentActivity); err != nil {
			return nil, pgdb.WrapTransient(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, pgdb.WrapTransient(err)
	}
	return out, nil
}
