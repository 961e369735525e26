package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

const (
	DashboardHiringMonths  = 6
	ReportHiringMonths     = 12
	DefaultAnniversaryDays = 30

	recentActivityLimit  = 8
	dashboardDepartments = 6
	topSkillsLimit       = 15
	maxHiringMonths      = 60
	maxAnniversaryDays   = 365
	newHireWindowDays    = 30
	activityWindowDays   = 30
	growthWindowMonths   = 6
)

var (
	salaryBounds = []float64{40000, 60000, 80000, 100000, 120000}
	salaryLabels = []string{"Under $40K", "$40K-$60K", "$60K-$80K", "$80K-$100K", "$100K-$120K", "$120K+"}

	tenureBounds = []float64{1, 3, 5, 10}
	tenureLabels = []string{"0-1 years", "1-3 years", "3-5 years", "5-10 years", "10+ years"}
)

const (
	promotionRateReason     = "promotion history is not recorded"
	satisfactionScoreReason = "no employee satisfaction survey source is configured"
)

// TransactionManager は複数の集計クエリを一つのスナップショットで読むための境界です。
type TransactionManager interface {
	WithinReadOnlySnapshot(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnlySnapshot(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Service は集計レポートのユースケースです。
// どの集計も社員が一人もいない場合はゼロ値を返します。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// NewService は Service を生成します。clock と tx は nil なら既定実装を使います。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

func (s *Service) today() time.Time {
	now := s.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DashboardStats はダッシュボード概要を返します。
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	employees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: count employees: %w", err)
	}

	departments, err := s.repo.CountDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: count departments: %w", err)
	}

	newHires, err := s.repo.CountHiredSince(ctx, s.today().AddDate(0, 0, -newHireWindowDays))
	if err != nil {
		return nil, fmt.Errorf("report: count new hires: %w", err)
	}

	avg, err := s.repo.AveragePositiveSalary(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: average salary: %w", err)
	}

	stats := &DashboardStats{
		TotalEmployees:   employees,
		TotalDepartments: departments,
		NewHires:         newHires,
	}
	if avg != nil {
		stats.AvgSalary = math.Round(*avg)
	}
	return stats, nil
}

// RecentActivity は直近の入社を新しい順に返します。
func (s *Service) RecentActivity(ctx context.Context) ([]Activity, error) {
	hires, err := s.repo.RecentHires(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("report: recent hires: %w", err)
	}

	now := s.clock.Now().UTC()
	activities := make([]Activity, 0, len(hires))
	for _, h := range hires {
		activities = append(activities, Activity{
			ID:        h.ID,
			Name:      h.Name,
			Action:    "New employee added",
			Type:      "add",
			CreatedAt: h.HireDate,
			Time:      relativeTime(now, h.HireDate),
		})
	}
	return activities, nil
}

// DashboardDepartmentStats は在籍者数の多い部署を返します。
func (s *Service) DashboardDepartmentStats(ctx context.Context) ([]DepartmentHeadcount, error) {
	rows, err := s.repo.ActiveHeadcountByDepartment(ctx, dashboardDepartments)
	if err != nil {
		return nil, fmt.Errorf("report: department headcount: %w", err)
	}

	out := make([]DepartmentHeadcount, 0, len(rows))
	for _, r := range rows {
		r.AvgSalary = math.Round(r.AvgSalary)
		out = append(out, r)
	}
	return out, nil
}

// DepartmentStats は部署ごとの給与集計を返します。
func (s *Service) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	rows, err := s.repo.DepartmentStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: department stats: %w", err)
	}

	out := make([]DepartmentStat, 0, len(rows))
	for _, r := range rows {
		r.AvgSalary = round(r.AvgSalary, 2)
		r.TotalSalary = round(r.TotalSalary, 2)
		out = append(out, r)
	}
	return out, nil
}

// HiringTrends は当月を含む直近 months か月の月別入社数を古い順に返します。
// 入社の無い月も 0 件として含めます。
func (s *Service) HiringTrends(ctx context.Context, months int) ([]MonthlyHires, error) {
	if months <= 0 || months > maxHiringMonths {
		return nil, ErrInvalidMonths
	}

	start := monthStart(s.today()).AddDate(0, -(months - 1), 0)
	counts, err := s.repo.HiresByMonth(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("report: hires by month: %w", err)
	}

	byMonth := indexByMonth(counts)
	out := make([]MonthlyHires, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		out = append(out, MonthlyHires{
			Month:     month.Format("2006-01"),
			MonthName: month.Format("January 2006"),
			Hires:     byMonth[month.Format("2006-01")],
		})
	}
	return out, nil
}

// SalaryAnalysis は在籍者 (状態未設定を含む) のうち給与が正の社員の給与分析を返します。
func (s *Service) SalaryAnalysis(ctx context.Context) (*SalaryAnalysis, error) {
	var out *SalaryAnalysis
	err := s.tx.WithinReadOnlySnapshot(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.salaryAnalysis(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) salaryAnalysis(ctx context.Context) (*SalaryAnalysis, error) {
	summary, err := s.repo.SalarySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: salary summary: %w", err)
	}

	median, err := s.median(ctx)
	if err != nil {
		return nil, err
	}

	buckets, err := s.repo.SalaryBuckets(ctx, salaryBounds)
	if err != nil {
		return nil, fmt.Errorf("report: salary buckets: %w", err)
	}

	departments, err := s.repo.DepartmentSalaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: department salaries: %w", err)
	}
	for i := range departments {
		departments[i].AvgSalary = round(departments[i].AvgSalary, 2)
	}
	if departments == nil {
		departments = []DepartmentSalary{}
	}

	return &SalaryAnalysis{
		AverageSalary:      round(summary.Avg, 2),
		MedianSalary:       round(median, 2),
		SalaryRange:        SalaryRange{Min: summary.Min, Max: summary.Max},
		StandardDeviation:  round(summary.Stddev, 2),
		TotalEmployees:     summary.Count,
		TotalPayroll:       round(summary.Total, 2),
		SalaryDistribution: fillBuckets(salaryLabels, buckets),
		DepartmentSalaries: departments,
	}, nil
}

// median は MedianSalaries が返す中央の一件または二件の平均です。
func (s *Service) median(ctx context.Context) (float64, error) {
	values, err := s.repo.MedianSalaries(ctx)
	if err != nil {
		return 0, fmt.Errorf("report: median salary: %w", err)
	}
	if len(values) == 0 {
		return 0, nil
	}
	if len(values) > 2 {
		return 0, fmt.Errorf("report: median salary: expected at most 2 values, got %d", len(values))
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// SkillsAnalysis は保有者の多いスキルと部署別のスキル分布を返します。
func (s *Service) SkillsAnalysis(ctx context.Context) (*SkillsAnalysis, error) {
	var out *SkillsAnalysis
	err := s.tx.WithinReadOnlySnapshot(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.skillsAnalysis(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) skillsAnalysis(ctx context.Context) (*SkillsAnalysis, error) {
	active, err := s.repo.CountActiveEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: count active employees: %w", err)
	}

	top, err := s.repo.TopSkills(ctx, topSkillsLimit)
	if err != nil {
		return nil, fmt.Errorf("report: top skills: %w", err)
	}

	byDepartment, err := s.repo.SkillsByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: skills by department: %w", err)
	}
	if byDepartment == nil {
		byDepartment = []DepartmentSkill{}
	}

	frequencies := make([]SkillFrequency, 0, len(top))
	for _, sc := range top {
		f := SkillFrequency{Skill: sc.Skill, Count: sc.Count}
		if active > 0 {
			f.Percentage = round(float64(sc.Count)*100/float64(active), 1)
		}
		frequencies = append(frequencies, f)
	}

	return &SkillsAnalysis{TopSkills: frequencies, SkillsByDepartment: byDepartment}, nil
}

// TenureAnalysis は勤続年数の区間ごとの人数を区間順に返します。
func (s *Service) TenureAnalysis(ctx context.Context) ([]TenureBucket, error) {
	counts, err := s.repo.TenureBuckets(ctx, s.today(), tenureBounds)
	if err != nil {
		return nil, fmt.Errorf("report: tenure buckets: %w", err)
	}

	filled := fillBuckets(tenureLabels, counts)
	out := make([]TenureBucket, 0, len(filled))
	for _, b := range filled {
		out = append(out, TenureBucket{Period: b.Range, Count: b.Count})
	}
	return out, nil
}

// PerformanceMetrics は定着率と平均勤続年数を返します。
// 昇進率と満足度はデータソースが無いため利用不可として返します。
func (s *Service) PerformanceMetrics(ctx context.Context) (*PerformanceMetrics, error) {
	today := s.today()

	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: count employees: %w", err)
	}

	retained, err := s.repo.CountHiredBefore(ctx, today.AddDate(-1, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("report: count retained: %w", err)
	}

	avgTenure, err := s.repo.AverageTenureYears(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("report: average tenure: %w", err)
	}

	metrics := &PerformanceMetrics{
		PromotionRate:     Unavailable(promotionRateReason),
		SatisfactionScore: Unavailable(satisfactionScoreReason),
	}
	if total > 0 {
		metrics.RetentionRate = round(float64(retained)*100/float64(total), 1)
	}
	if avgTenure != nil {
		metrics.AverageTenure = round(*avgTenure, 1)
	}
	return metrics, nil
}

// Unavailable はデータソースの無い指標を表す値を返します。
func Unavailable(reason string) UnavailableMetric {
	return UnavailableMetric{Available: false, Value: nil, Reason: reason}
}

// GrowthAnalytics は直近 12 か月の人員推移と部署別の増加率を返します。
func (s *Service) GrowthAnalytics(ctx context.Context) (*GrowthAnalytics, error) {
	today := s.today()
	start := monthStart(today).AddDate(0, -(ReportHiringMonths - 1), 0)

	base, err := s.repo.CountHiredBefore(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("report: count hired before window: %w", err)
	}

	counts, err := s.repo.HiresByMonth(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("report: hires by month: %w", err)
	}

	byMonth := indexByMonth(counts)
	monthly := make([]MonthlyGrowth, 0, ReportHiringMonths)
	running := base
	for i := 0; i < ReportHiringMonths; i++ {
		month := start.AddDate(0, i, 0)
		hires := byMonth[month.Format("2006-01")]
		running += hires
		monthly = append(monthly, MonthlyGrowth{
			Month:          month.Format("2006-01"),
			MonthName:      month.Format("January 2006"),
			NewHires:       hires,
			TotalEmployees: running,
		})
	}

	rows, err := s.repo.DepartmentGrowth(ctx, today.AddDate(0, -growthWindowMonths, 0))
	if err != nil {
		return nil, fmt.Errorf("report: department growth: %w", err)
	}

	departments := make([]DepartmentGrowth, 0, len(rows))
	for _, r := range rows {
		g := DepartmentGrowth{
			ID:             r.ID,
			Department:     r.Department,
			RecentHires:    r.RecentHires,
			TotalEmployees: r.TotalEmployees,
		}
		if r.PriorEmployees > 0 {
			rate := round(float64(r.RecentHires)*100/float64(r.PriorEmployees), 2)
			g.GrowthRate = &rate
		}
		departments = append(departments, g)
	}
	sort.SliceStable(departments, func(i, j int) bool {
		a, b := departments[i].GrowthRate, departments[j].GrowthRate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	return &GrowthAnalytics{MonthlyGrowth: monthly, DepartmentGrowth: departments}, nil
}

// RealtimeMetrics は今月・今週の入社数と部署ごとの直近 30 日の入社数を返します。
func (s *Service) RealtimeMetrics(ctx context.Context) (*RealtimeMetrics, error) {
	today := s.today()

	thisMonth, err := s.repo.CountHiredSince(ctx, monthStart(today))
	if err != nil {
		return nil, fmt.Errorf("report: count hires this month: %w", err)
	}

	thisWeek, err := s.repo.CountHiredSince(ctx, today.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("report: count hires this week: %w", err)
	}

	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: count employees: %w", err)
	}

	activity, err := s.repo.DepartmentActivity(ctx, today.AddDate(0, 0, -activityWindowDays))
	if err != nil {
		return nil, fmt.Errorf("report: department activity: %w", err)
	}
	if activity == nil {
		activity = []DepartmentActivity{}
	}

	return &RealtimeMetrics{
		CurrentStats: CurrentStats{
			ThisMonthHires: thisMonth,
			ThisWeekHires:  thisWeek,
			TotalEmployees: total,
		},
		DepartmentActivity: activity,
	}, nil
}

// UpcomingAnniversaries は今日から days 日以内に入社記念日を迎える社員を近い順に返します。
// 2 月 29 日入社の社員は平年では 2 月 28 日を記念日とします。
func (s *Service) UpcomingAnniversaries(ctx context.Context, days int) ([]Anniversary, error) {
	if days == 0 {
		days = DefaultAnniversaryDays
	}
	if days < 0 || days > maxAnniversaryDays {
		return nil, ErrInvalidDays
	}

	records, err := s.repo.ListHireDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: list hire dates: %w", err)
	}

	today := s.today()
	out := make([]Anniversary, 0)
	for _, r := range records {
		next, years := nextAnniversary(r.HireDate, today)
		if years < 1 {
			continue
		}
		remaining := int(next.Sub(today).Hours() / 24)
		if remaining > days {
			continue
		}
		out = append(out, Anniversary{
			ID:            r.ID,
			Name:          r.Name,
			HireDate:      r.HireDate,
			Years:         years,
			DaysRemaining: remaining,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysRemaining != out[j].DaysRemaining {
			return out[i].DaysRemaining < out[j].DaysRemaining
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func nextAnniversary(hired, today time.Time) (time.Time, int) {
	years := today.Year() - hired.Year()
	next := anniversaryIn(hired, today.Year())
	if next.Before(today) {
		years++
		next = anniversaryIn(hired, today.Year()+1)
	}
	return next, years
}

func anniversaryIn(hired time.Time, year int) time.Time {
	month, day := hired.Month(), hired.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func relativeTime(now, at time.Time) string {
	elapsed := now.Sub(at)
	switch {
	case elapsed >= 0 && elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	case elapsed >= 0 && elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	default:
		return at.Format("January 02, 2006")
	}
}

func fillBuckets(labels []string, counts map[int]int64) []BucketCount {
	out := make([]BucketCount, len(labels))
	for i, label := range labels {
		out[i] = BucketCount{Range: label, Count: counts[i]}
	}
	return out
}

func indexByMonth(counts []MonthCount) map[string]int64 {
	byMonth := make(map[string]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month.UTC().Format("2006-01")] += c.Count
	}
	return byMonth
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
