package report

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

// fakeReportRepo は salaries と hireDates から集計値を導きます。
type fakeReportRepo struct {
	employees   int64
	departments int64
	salaries    []float64
	hireDates   []HireRecord

	byMonth       []MonthCount
	tenure        map[int]int64
	buckets       map[int]int64
	growth        []DepartmentGrowthCount
	hiredBefore   map[string]int64
	hiredSince    map[string]int64
	avgTenure     *float64
	topSkills     []SkillCount
	activeCount   int64
	err           error
	lastSince     time.Time
	lastTenureDay time.Time

	// afterSummary は SalarySummary の直後に一度だけ呼ばれ、並行する更新を再現します。
	afterSummary func(r *fakeReportRepo)
}

type snapshotKey struct{}

// fakeSnapshotTx はトランザクション開始時点の給与をコンテキストに固定します。
type fakeSnapshotTx struct {
	repo  *fakeReportRepo
	calls int
}

func (f *fakeSnapshotTx) WithinReadOnlySnapshot(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	frozen := append([]float64(nil), f.repo.salaries...)
	return fn(context.WithValue(ctx, snapshotKey{}, frozen))
}

func (r *fakeReportRepo) salariesAt(ctx context.Context) []float64 {
	if frozen, ok := ctx.Value(snapshotKey{}).([]float64); ok {
		return frozen
	}
	return r.salaries
}

func key(t time.Time) string { return t.Format("2006-01-02") }

func (r *fakeReportRepo) CountEmployees(context.Context) (int64, error) {
	return r.employees, r.err
}

func (r *fakeReportRepo) CountDepartments(context.Context) (int64, error) {
	return r.departments, r.err
}

func (r *fakeReportRepo) CountHiredSince(_ context.Context, since time.Time) (int64, error) {
	r.lastSince = since
	return r.hiredSince[key(since)], r.err
}

func (r *fakeReportRepo) CountHiredBefore(_ context.Context, before time.Time) (int64, error) {
	return r.hiredBefore[key(before)], r.err
}

func (r *fakeReportRepo) AveragePositiveSalary(context.Context) (*float64, error) {
	if len(r.salaries) == 0 {
		return nil, r.err
	}
	var sum float64
	for _, s := range r.salaries {
		sum += s
	}
	avg := sum / float64(len(r.salaries))
	return &avg, r.err
}

func (r *fakeReportRepo) RecentHires(context.Context, int) ([]HireRecord, error) {
	return r.hireDates, r.err
}

func (r *fakeReportRepo) ActiveHeadcountByDepartment(context.Context, int) ([]DepartmentHeadcount, error) {
	return []DepartmentHeadcount{{Department: "Engineering", EmployeeCount: 2, AvgSalary: 70000.4}}, r.err
}

func (r *fakeReportRepo) DepartmentStats(context.Context) ([]DepartmentStat, error) {
	return []DepartmentStat{{ID: 1, Name: "Engineering", AvgSalary: 33333.3333, TotalSalary: 100000}}, r.err
}

func (r *fakeReportRepo) HiresByMonth(_ context.Context, since time.Time) ([]MonthCount, error) {
	r.lastSince = since
	return r.byMonth, r.err
}

func (r *fakeReportRepo) SalarySummary(ctx context.Context) (SalarySummary, error) {
	salaries := r.salariesAt(ctx)
	if hook := r.afterSummary; hook != nil {
		r.afterSummary = nil
		defer hook(r)
	}
	if len(salaries) == 0 {
		return SalarySummary{}, r.err
	}
	sorted := append([]float64(nil), salaries...)
	sort.Float64s(sorted)
	var total float64
	for _, s := range sorted {
		total += s
	}
	return SalarySummary{
		Count: int64(len(sorted)),
		Avg:   total / float64(len(sorted)),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Total: total,
	}, r.err
}

func (r *fakeReportRepo) MedianSalaries(ctx context.Context) ([]float64, error) {
	sorted := append([]float64(nil), r.salariesAt(ctx)...)
	if len(sorted) == 0 {
		return nil, r.err
	}
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return []float64{sorted[n/2]}, r.err
	}
	return []float64{sorted[n/2-1], sorted[n/2]}, r.err
}

func (r *fakeReportRepo) SalaryBuckets(context.Context, []float64) (map[int]int64, error) {
	return r.buckets, r.err
}

func (r *fakeReportRepo) DepartmentSalaries(context.Context) ([]DepartmentSalary, error) {
	return nil, r.err
}

func (r *fakeReportRepo) CountActiveEmployees(context.Context) (int64, error) {
	return r.activeCount, r.err
}

func (r *fakeReportRepo) TopSkills(context.Context, int) ([]SkillCount, error) {
	return r.topSkills, r.err
}

func (r *fakeReportRepo) SkillsByDepartment(context.Context) ([]DepartmentSkill, error) {
	return nil, r.err
}

func (r *fakeReportRepo) TenureBuckets(_ context.Context, today time.Time, _ []float64) (map[int]int64, error) {
	r.lastTenureDay = today
	return r.tenure, r.err
}

func (r *fakeReportRepo) AverageTenureYears(context.Context, time.Time) (*float64, error) {
	return r.avgTenure, r.err
}

func (r *fakeReportRepo) DepartmentGrowth(context.Context, time.Time) ([]DepartmentGrowthCount, error) {
	return r.growth, r.err
}

func (r *fakeReportRepo) DepartmentActivity(context.Context, time.Time) ([]DepartmentActivity, error) {
	return nil, r.err
}

func (r *fakeReportRepo) ListHireDates(context.Context) ([]HireRecord, error) {
	return r.hireDates, r.err
}

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeReportRepo) *Service {
	return NewService(repo, &stubClock{now: fixedNow}, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_SalaryAnalysis_MedianEven(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{salaries: []float64{40, 10, 30, 20}})
	got, err := svc.SalaryAnalysis(context.Background())
	if err != nil {
		t.Fatalf("SalaryAnalysis returned error: %v", err)
	}
	if got.MedianSalary != 25 {
		t.Fatalf("expected median 25, got %v", got.MedianSalary)
	}
	if got.AverageSalary != 25 || got.SalaryRange.Min != 10 || got.SalaryRange.Max != 40 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestService_SalaryAnalysis_MedianOdd(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{salaries: []float64{30, 10, 20}})
	got, err := svc.SalaryAnalysis(context.Background())
	if err != nil {
		t.Fatalf("SalaryAnalysis returned error: %v", err)
	}
	if got.MedianSalary != 20 {
		t.Fatalf("expected median 20, got %v", got.MedianSalary)
	}
}

func TestService_SalaryAnalysis_EmptyReturnsZeroBuckets(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{})
	got, err := svc.SalaryAnalysis(context.Background())
	if err != nil {
		t.Fatalf("SalaryAnalysis returned error: %v", err)
	}
	if got.MedianSalary != 0 || got.TotalEmployees != 0 {
		t.Fatalf("expected zero values, got %+v", got)
	}
	if len(got.SalaryDistribution) != len(salaryLabels) {
		t.Fatalf("expected %d buckets, got %d", len(salaryLabels), len(got.SalaryDistribution))
	}
	for i, b := range got.SalaryDistribution {
		if b.Range != salaryLabels[i] || b.Count != 0 {
			t.Fatalf("unexpected bucket %d: %+v", i, b)
		}
	}
	if got.DepartmentSalaries == nil {
		t.Fatalf("expected empty non-nil department salaries")
	}
}

func TestService_SalaryAnalysis_BucketsInOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{salaries: []float64{45000}, buckets: map[int]int64{1: 1, 5: 2}})
	got, err := svc.SalaryAnalysis(context.Background())
	if err != nil {
		t.Fatalf("SalaryAnalysis returned error: %v", err)
	}
	if got.SalaryDistribution[1].Range != "$40K-$60K" || got.SalaryDistribution[1].Count != 1 {
		t.Fatalf("unexpected bucket: %+v", got.SalaryDistribution[1])
	}
	if got.SalaryDistribution[5].Range != "$120K+" || got.SalaryDistribution[5].Count != 2 {
		t.Fatalf("unexpected bucket: %+v", got.SalaryDistribution[5])
	}
}

func TestService_SalaryAnalysis_ConcurrentWritesKeepSnapshot(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		before []float64
		after  []float64
		count  int64
		median float64
	}{
		{name: "insert lower salaries", before: []float64{10, 20, 30}, after: []float64{5, 6, 10, 20, 30}, count: 3, median: 20},
		{name: "delete highest salary", before: []float64{10, 20, 30, 40}, after: []float64{10, 20, 30}, count: 4, median: 25},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeReportRepo{
				salaries:     tc.before,
				afterSummary: func(r *fakeReportRepo) { r.salaries = tc.after },
			}
			tx := &fakeSnapshotTx{repo: repo}
			svc := NewService(repo, &stubClock{now: fixedNow}, tx)

			got, err := svc.SalaryAnalysis(context.Background())
			if err != nil {
				t.Fatalf("SalaryAnalysis returned error: %v", err)
			}
			if tx.calls != 1 {
				t.Fatalf("expected one snapshot transaction, got %d", tx.calls)
			}
			if got.TotalEmployees != tc.count || got.MedianSalary != tc.median {
				t.Fatalf("expected count %d median %v, got count %d median %v", tc.count, tc.median, got.TotalEmployees, got.MedianSalary)
			}
		})
	}
}

func TestService_SalaryAnalysis_MedianComesFromOneRead(t *testing.T) {
	t.Parallel()

	// スナップショットが無くても、中央値は一回の読み取りで得た母集団から求まります。
	repo := &fakeReportRepo{
		salaries:     []float64{10, 20, 30},
		afterSummary: func(r *fakeReportRepo) { r.salaries = []float64{5, 6, 10, 20, 30} },
	}

	got, err := newTestService(repo).SalaryAnalysis(context.Background())
	if err != nil {
		t.Fatalf("SalaryAnalysis returned error: %v", err)
	}
	if got.MedianSalary != 10 {
		t.Fatalf("expected median of the later population 10, got %v", got.MedianSalary)
	}
}

func TestService_SalaryAnalysis_SnapshotErrorPropagates(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("db down")
	repo := &fakeReportRepo{salaries: []float64{10}, err: repoErr}
	svc := NewService(repo, &stubClock{now: fixedNow}, &fakeSnapshotTx{repo: repo})

	if _, err := svc.SalaryAnalysis(context.Background()); !errors.Is(err, repoErr) {
		t.Fatalf("expected %v, got %v", repoErr, err)
	}
}

func TestService_DashboardStats_EmptyEmployees(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{departments: 4}
	got, err := newTestService(repo).DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}
	want := DashboardStats{TotalEmployees: 0, TotalDepartments: 4, NewHires: 0, AvgSalary: 0}
	if *got != want {
		t.Fatalf("expected %+v, got %+v", want, *got)
	}
	if !repo.lastSince.Equal(date(2026, 2, 13)) {
		t.Fatalf("expected new-hire window to start 30 days ago, got %v", repo.lastSince)
	}
}

func TestService_DashboardStats_RoundsAverage(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{employees: 2, departments: 1, salaries: []float64{50000.40, 50001}}
	got, err := newTestService(repo).DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}
	if got.AvgSalary != 50001 {
		t.Fatalf("expected rounded average 50001, got %v", got.AvgSalary)
	}
}

func TestService_DashboardStats_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	if _, err := newTestService(&fakeReportRepo{err: boom}).DashboardStats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestService_HiringTrends_FillsMonths(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{byMonth: []MonthCount{
		{Month: date(2025, 12, 1), Count: 3},
		{Month: date(2026, 3, 1), Count: 1},
	}}
	got, err := newTestService(repo).HiringTrends(context.Background(), DashboardHiringMonths)
	if err != nil {
		t.Fatalf("HiringTrends returned error: %v", err)
	}
	if !repo.lastSince.Equal(date(2025, 10, 1)) {
		t.Fatalf("expected window to start 2025-10-01, got %v", repo.lastSince)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 months, got %d", len(got))
	}
	if got[0].Month != "2025-10" || got[0].MonthName != "October 2025" || got[0].Hires != 0 {
		t.Fatalf("unexpected first month: %+v", got[0])
	}
	if got[2].Month != "2025-12" || got[2].Hires != 3 {
		t.Fatalf("unexpected december: %+v", got[2])
	}
	if got[5].Month != "2026-03" || got[5].Hires != 1 {
		t.Fatalf("unexpected last month: %+v", got[5])
	}
}

func TestService_HiringTrends_InvalidMonths(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{})
	for _, months := range []int{0, -1, 61} {
		if _, err := svc.HiringTrends(context.Background(), months); !errors.Is(err, ErrInvalidMonths) {
			t.Fatalf("months=%d: expected ErrInvalidMonths, got %v", months, err)
		}
	}
}

func TestService_TenureAnalysis_BucketOrder(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{tenure: map[int]int64{0: 2, 4: 1}}
	got, err := newTestService(repo).TenureAnalysis(context.Background())
	if err != nil {
		t.Fatalf("TenureAnalysis returned error: %v", err)
	}

	want := []TenureBucket{
		{Period: "0-1 years", Count: 2},
		{Period: "1-3 years", Count: 0},
		{Period: "3-5 years", Count: 0},
		{Period: "5-10 years", Count: 0},
		{Period: "10+ years", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if !repo.lastTenureDay.Equal(date(2026, 3, 15)) {
		t.Fatalf("expected tenure measured at today, got %v", repo.lastTenureDay)
	}
}

func TestService_PerformanceMetrics(t *testing.T) {
	t.Parallel()

	avg := 2.46
	repo := &fakeReportRepo{
		employees:   4,
		hiredBefore: map[string]int64{"2025-03-16": 3},
		avgTenure:   &avg,
	}
	got, err := newTestService(repo).PerformanceMetrics(context.Background())
	if err != nil {
		t.Fatalf("PerformanceMetrics returned error: %v", err)
	}
	if got.RetentionRate != 75 {
		t.Fatalf("expected retention 75, got %v", got.RetentionRate)
	}
	if got.AverageTenure != 2.5 {
		t.Fatalf("expected average tenure 2.5, got %v", got.AverageTenure)
	}
	for _, m := range []UnavailableMetric{got.PromotionRate, got.SatisfactionScore} {
		if m.Available || m.Value != nil || m.Reason == "" {
			t.Fatalf("expected explicit unavailable metric, got %+v", m)
		}
	}
}

func TestService_PerformanceMetrics_Empty(t *testing.T) {
	t.Parallel()

	got, err := newTestService(&fakeReportRepo{}).PerformanceMetrics(context.Background())
	if err != nil {
		t.Fatalf("PerformanceMetrics returned error: %v", err)
	}
	if got.RetentionRate != 0 || got.AverageTenure != 0 {
		t.Fatalf("expected zeros, got %+v", got)
	}
}

func TestService_SkillsAnalysis_Percentages(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{
		activeCount: 3,
		topSkills:   []SkillCount{{Skill: "Go", Count: 2}, {Skill: "SQL", Count: 1}},
	}
	got, err := newTestService(repo).SkillsAnalysis(context.Background())
	if err != nil {
		t.Fatalf("SkillsAnalysis returned error: %v", err)
	}
	if got.TopSkills[0].Percentage != 66.7 || got.TopSkills[1].Percentage != 33.3 {
		t.Fatalf("unexpected percentages: %+v", got.TopSkills)
	}
	if got.SkillsByDepartment == nil {
		t.Fatalf("expected empty non-nil department skills")
	}
}

func TestService_GrowthAnalytics(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{
		hiredBefore: map[string]int64{"2025-04-01": 10},
		byMonth:     []MonthCount{{Month: date(2025, 4, 1), Count: 2}, {Month: date(2026, 1, 1), Count: 1}},
		growth: []DepartmentGrowthCount{
			{ID: 1, Department: "Sales", RecentHires: 1, PriorEmployees: 0, TotalEmployees: 1},
			{ID: 2, Department: "Engineering", RecentHires: 1, PriorEmployees: 4, TotalEmployees: 5},
			{ID: 3, Department: "Finance", RecentHires: 3, PriorEmployees: 3, TotalEmployees: 6},
		},
	}
	got, err := newTestService(repo).GrowthAnalytics(context.Background())
	if err != nil {
		t.Fatalf("GrowthAnalytics returned error: %v", err)
	}

	if len(got.MonthlyGrowth) != ReportHiringMonths {
		t.Fatalf("expected %d months, got %d", ReportHiringMonths, len(got.MonthlyGrowth))
	}
	if got.MonthlyGrowth[0].TotalEmployees != 12 {
		t.Fatalf("expected running total 12 in first month, got %+v", got.MonthlyGrowth[0])
	}
	last := got.MonthlyGrowth[len(got.MonthlyGrowth)-1]
	if last.Month != "2026-03" || last.TotalEmployees != 13 {
		t.Fatalf("unexpected last month: %+v", last)
	}

	order := []string{got.DepartmentGrowth[0].Department, got.DepartmentGrowth[1].Department, got.DepartmentGrowth[2].Department}
	if order[0] != "Finance" || order[1] != "Engineering" || order[2] != "Sales" {
		t.Fatalf("unexpected order: %v", order)
	}
	if got.DepartmentGrowth[2].GrowthRate != nil {
		t.Fatalf("expected nil growth rate without prior employees")
	}
	if *got.DepartmentGrowth[1].GrowthRate != 25 {
		t.Fatalf("expected 25%% growth, got %v", *got.DepartmentGrowth[1].GrowthRate)
	}
}

func TestService_RealtimeMetrics(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{
		employees:  9,
		hiredSince: map[string]int64{"2026-03-01": 2, "2026-03-08": 1},
	}
	got, err := newTestService(repo).RealtimeMetrics(context.Background())
	if err != nil {
		t.Fatalf("RealtimeMetrics returned error: %v", err)
	}
	want := CurrentStats{ThisMonthHires: 2, ThisWeekHires: 1, TotalEmployees: 9}
	if got.CurrentStats != want {
		t.Fatalf("expected %+v, got %+v", want, got.CurrentStats)
	}
	if got.DepartmentActivity == nil {
		t.Fatalf("expected empty non-nil department activity")
	}
}

func TestService_RecentActivity_RelativeTime(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{hireDates: []HireRecord{
		{ID: 1, Name: "Ada Lovelace", HireDate: date(2026, 3, 15)},
		{ID: 2, Name: "Alan Turing", HireDate: date(2026, 3, 12)},
		{ID: 3, Name: "Grace Hopper", HireDate: date(2026, 1, 5)},
	}}
	got, err := newTestService(repo).RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}

	want := []string{"12 hours ago", "3 days ago", "January 05, 2026"}
	for i, w := range want {
		if got[i].Time != w {
			t.Fatalf("activity %d: expected %q, got %q", i, w, got[i].Time)
		}
		if got[i].Type != "add" || got[i].Action != "New employee added" {
			t.Fatalf("unexpected activity: %+v", got[i])
		}
	}
}

func TestService_UpcomingAnniversaries(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{hireDates: []HireRecord{
		{ID: 1, Name: "Ada", HireDate: date(2020, 3, 20)},
		{ID: 2, Name: "Alan", HireDate: date(2025, 3, 16)},
		{ID: 3, Name: "Grace", HireDate: date(2026, 3, 1)},
		{ID: 4, Name: "Linus", HireDate: date(2019, 6, 1)},
		{ID: 5, Name: "Barbara", HireDate: date(2024, 3, 15)},
	}}

	got, err := newTestService(repo).UpcomingAnniversaries(context.Background(), 0)
	if err != nil {
		t.Fatalf("UpcomingAnniversaries returned error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 anniversaries, got %+v", got)
	}
	if got[0].Name != "Barbara" || got[0].DaysRemaining != 0 || got[0].Years != 2 {
		t.Fatalf("unexpected first anniversary: %+v", got[0])
	}
	if got[1].Name != "Alan" || got[1].DaysRemaining != 1 || got[1].Years != 1 {
		t.Fatalf("unexpected second anniversary: %+v", got[1])
	}
	if got[2].Name != "Ada" || got[2].DaysRemaining != 5 || got[2].Years != 6 {
		t.Fatalf("unexpected third anniversary: %+v", got[2])
	}
}

func TestService_UpcomingAnniversaries_LeapDayAndYearWrap(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{hireDates: []HireRecord{
		{ID: 1, Name: "Leap", HireDate: date(2024, 2, 29)},
		{ID: 2, Name: "NewYear", HireDate: date(2020, 1, 2)},
	}}
	svc := NewService(repo, &stubClock{now: time.Date(2026, 12, 30, 8, 0, 0, 0, time.UTC)}, nil)

	got, err := svc.UpcomingAnniversaries(context.Background(), 61)
	if err != nil {
		t.Fatalf("UpcomingAnniversaries returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 anniversaries, got %+v", got)
	}
	if got[0].Name != "NewYear" || got[0].DaysRemaining != 3 || got[0].Years != 7 {
		t.Fatalf("unexpected wrap-around anniversary: %+v", got[0])
	}
	if got[1].Name != "Leap" || got[1].DaysRemaining != 60 || got[1].Years != 3 {
		t.Fatalf("unexpected leap-day anniversary: %+v", got[1])
	}
}

func TestService_UpcomingAnniversaries_InvalidDays(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{})
	for _, days := range []int{-1, 366} {
		if _, err := svc.UpcomingAnniversaries(context.Background(), days); !errors.Is(err, ErrInvalidDays) {
			t.Fatalf("days=%d: expected ErrInvalidDays, got %v", days, err)
		}
	}
}

func TestService_DepartmentRollups_Rounding(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeReportRepo{})

	heads, err := svc.DashboardDepartmentStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardDepartmentStats returned error: %v", err)
	}
	if heads[0].AvgSalary != 70000 {
		t.Fatalf("expected rounded average, got %v", heads[0].AvgSalary)
	}

	stats, err := svc.DepartmentStats(context.Background())
	if err != nil {
		t.Fatalf("DepartmentStats returned error: %v", err)
	}
	if stats[0].AvgSalary != 33333.33 {
		t.Fatalf("expected 2dp average, got %v", stats[0].AvgSalary)
	}
}
