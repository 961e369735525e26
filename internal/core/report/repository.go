package report

import (
	"context"
	"time"
)

// Repository は集計クエリの抽象です。すべて読み取り専用で、
// 基準日は呼び出し側から渡されます。
type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountHiredSince(ctx context.Context, since time.Time) (int64, error)
	CountHiredBefore(ctx context.Context, before time.Time) (int64, error)
	// AveragePositiveSalary は給与が正の社員の平均を返します。対象が無ければ nil です。
	AveragePositiveSalary(ctx context.Context) (*float64, error)

	RecentHires(ctx context.Context, limit int) ([]HireRecord, error)
	ActiveHeadcountByDepartment(ctx context.Context, limit int) ([]DepartmentHeadcount, error)
	DepartmentStats(ctx context.Context) ([]DepartmentStat, error)
	// HiresByMonth は since 以降の入社数を月初日ごとに返します。
	HiresByMonth(ctx context.Context, since time.Time) ([]MonthCount, error)

	// SalarySummary は在籍中かつ給与が正の社員の統計量を返します。
	SalarySummary(ctx context.Context) (SalarySummary, error)
	// MedianSalaries は SalarySummary と同じ母集団の中央に位置する給与を一つのクエリで返します。
	// 件数が奇数なら一件、偶数なら二件を昇順で返し、母集団が空なら空です。
	MedianSalaries(ctx context.Context) ([]float64, error)
	// SalaryBuckets は bounds を境界とする半開区間ごとの件数を区間番号で返します。
	SalaryBuckets(ctx context.Context, bounds []float64) (map[int]int64, error)
	DepartmentSalaries(ctx context.Context) ([]DepartmentSalary, error)

	CountActiveEmployees(ctx context.Context) (int64, error)
	TopSkills(ctx context.Context, limit int) ([]SkillCount, error)
	SkillsByDepartment(ctx context.Context) ([]DepartmentSkill, error)

	// TenureBuckets は today 時点の勤続年数 (日数/365) を bounds で区切った件数を返します。
	TenureBuckets(ctx context.Context, today time.Time, bounds []float64) (map[int]int64, error)
	// AverageTenureYears は入社日のある社員の平均勤続年数を返します。対象が無ければ nil です。
	AverageTenureYears(ctx context.Context, today time.Time) (*float64, error)

	DepartmentGrowth(ctx context.Context, since time.Time) ([]DepartmentGrowthCount, error)
	DepartmentActivity(ctx context.Context, since time.Time) ([]DepartmentActivity, error)
	ListHireDates(ctx context.Context) ([]HireRecord, error)
}

// HireRecord は社員の入社日です。
type HireRecord struct {
	ID       int64
	Name     string
	HireDate time.Time
}

// MonthCount は月初日ごとの件数です。
type MonthCount struct {
	Month time.Time
	Count int64
}

// SalarySummary は給与の基本統計量です。
type SalarySummary struct {
	Count  int64
	Avg    float64
	Min    float64
	Max    float64
	Stddev float64
	Total  float64
}

// SkillCount はスキルごとの保有者数です。
type SkillCount struct {
	Skill string
	Count int64
}

// DepartmentGrowthCount は部署ごとの期間前後の入社数です。
type DepartmentGrowthCount struct {
	ID             int64
	Department     string
	RecentHires    int64
	PriorEmployees int64
	TotalEmployees int64
}
