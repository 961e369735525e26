package report

import "time"

// 集計結果はそのまま API の応答になる読み取りモデルです。

// DashboardStats はダッシュボードの概要です。
type DashboardStats struct {
	TotalEmployees   int64   `json:"totalEmployees"`
	TotalDepartments int64   `json:"totalDepartments"`
	NewHires         int64   `json:"newHires"`
	AvgSalary        float64 `json:"avgSalary"`
}

// Activity は最近の入社を表すアクティビティです。
type Activity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Time      string    `json:"time"`
}

// DepartmentHeadcount はダッシュボード用の部署別在籍数です。
type DepartmentHeadcount struct {
	Department    string  `json:"department"`
	EmployeeCount int64   `json:"employee_count"`
	AvgSalary     float64 `json:"avg_salary"`
}

// DepartmentStat は部署ごとの給与集計とプロジェクト数です。
type DepartmentStat struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	EmployeeCount int64   `json:"employee_count"`
	AvgSalary     float64 `json:"avg_salary"`
	MinSalary     float64 `json:"min_salary"`
	MaxSalary     float64 `json:"max_salary"`
	TotalSalary   float64 `json:"total_salary"`
	ProjectCount  int64   `json:"project_count"`
}

// MonthlyHires は月別の入社数です。
type MonthlyHires struct {
	Month     string `json:"month"`
	MonthName string `json:"month_name"`
	Hires     int64  `json:"hires"`
}

// SalaryRange は給与の最小値と最大値です。
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BucketCount はラベル付き区間の件数です。
type BucketCount struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// DepartmentSalary は部署ごとの平均給与です。
type DepartmentSalary struct {
	Department    string  `json:"department"`
	AvgSalary     float64 `json:"avg_salary"`
	EmployeeCount int64   `json:"employee_count"`
}

// SalaryAnalysis は在籍者の給与分析です。
type SalaryAnalysis struct {
	AverageSalary      float64            `json:"averageSalary"`
	MedianSalary       float64            `json:"medianSalary"`
	SalaryRange        SalaryRange        `json:"salaryRange"`
	StandardDeviation  float64            `json:"standardDeviation"`
	TotalEmployees     int64              `json:"totalEmployees"`
	TotalPayroll       float64            `json:"totalPayroll"`
	SalaryDistribution []BucketCount      `json:"salaryDistribution"`
	DepartmentSalaries []DepartmentSalary `json:"departmentSalaries"`
}

// SkillFrequency はスキルの保有者数と在籍者に対する割合です。
type SkillFrequency struct {
	Skill      string  `json:"skill"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DepartmentSkill は部署ごとのスキル保有者数です。
type DepartmentSkill struct {
	Department string `json:"department"`
	Skill      string `json:"skill"`
	Count      int64  `json:"count"`
}

// SkillsAnalysis はスキル分析です。
type SkillsAnalysis struct {
	TopSkills          []SkillFrequency  `json:"topSkills"`
	SkillsByDepartment []DepartmentSkill `json:"skillsByDepartment"`
}

// TenureBucket は勤続年数の区間ごとの人数です。
type TenureBucket struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// UnavailableMetric はデータソースが存在しない指標です。
// ゼロとデータ無しを呼び出し側が区別できるよう Value は常に nil です。
type UnavailableMetric struct {
	Available bool     `json:"available"`
	Value     *float64 `json:"value"`
	Reason    string   `json:"reason"`
}

// PerformanceMetrics は定着率などの指標です。
type PerformanceMetrics struct {
	RetentionRate     float64           `json:"retentionRate"`
	AverageTenure     float64           `json:"averageTenure"`
	PromotionRate     UnavailableMetric `json:"promotionRate"`
	SatisfactionScore UnavailableMetric `json:"satisfactionScore"`
}

// MonthlyGrowth は月別入社数と月末時点の累計人数です。
type MonthlyGrowth struct {
	Month          string `json:"month"`
	MonthName      string `json:"month_name"`
	NewHires       int64  `json:"new_hires"`
	TotalEmployees int64  `json:"total_employees"`
}

// DepartmentGrowth は部署ごとの直近の増加率です。
// 比較対象の人数がゼロの部署では GrowthRate は nil です。
type DepartmentGrowth struct {
	ID             int64    `json:"id"`
	Department     string   `json:"department"`
	RecentHires    int64    `json:"recent_hires"`
	TotalEmployees int64    `json:"total_employees"`
	GrowthRate     *float64 `json:"growth_rate"`
}

// GrowthAnalytics は成長分析です。
type GrowthAnalytics struct {
	MonthlyGrowth    []MonthlyGrowth    `json:"monthlyGrowth"`
	DepartmentGrowth []DepartmentGrowth `json:"departmentGrowth"`
}

// CurrentStats は今月・今週の入社数と総人数です。
type CurrentStats struct {
	ThisMonthHires int64 `json:"this_month_hires"`
	ThisWeekHires  int64 `json:"this_week_hires"`
	TotalEmployees int64 `json:"total_employees"`
}

// DepartmentActivity は部署ごとの直近 30 日の入社数です。
type DepartmentActivity struct {
	ID             int64  `json:"id"`
	Department     string `json:"department"`
	TotalEmployees int64  `json:"total_employees"`
	RecentActivity int64  `json:"recent_activity"`
}

// RealtimeMetrics はリアルタイム指標です。
type RealtimeMetrics struct {
	CurrentStats       CurrentStats         `json:"currentStats"`
	DepartmentActivity []DepartmentActivity `json:"departmentActivity"`
}

// Anniversary は入社記念日の通知です。
type Anniversary struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	HireDate      time.Time `json:"hire_date"`
	Years         int       `json:"years"`
	DaysRemaining int       `json:"days_remaining"`
}
