package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/core/report"
	"github.com/sirupsen/logrus"
)

// ReportService は集計レポートのユースケースです。
type ReportService interface {
	DashboardStats(ctx context.Context) (*report.DashboardStats, error)
	RecentActivity(ctx context.Context) ([]report.Activity, error)
	DashboardDepartmentStats(ctx context.Context) ([]report.DepartmentHeadcount, error)
	DepartmentStats(ctx context.Context) ([]report.DepartmentStat, error)
	HiringTrends(ctx context.Context, months int) ([]report.MonthlyHires, error)
	SalaryAnalysis(ctx context.Context) (*report.SalaryAnalysis, error)
	SkillsAnalysis(ctx context.Context) (*report.SkillsAnalysis, error)
	TenureAnalysis(ctx context.Context) ([]report.TenureBucket, error)
	PerformanceMetrics(ctx context.Context) (*report.PerformanceMetrics, error)
	GrowthAnalytics(ctx context.Context) (*report.GrowthAnalytics, error)
	RealtimeMetrics(ctx context.Context) (*report.RealtimeMetrics, error)
	UpcomingAnniversaries(ctx context.Context, days int) ([]report.Anniversary, error)
}

const metricsFailureReason = "metrics could not be computed"

// ReportHandler はダッシュボードとレポートの HTTP ハンドラーです。
// 集計に失敗した場合もクライアントが描画できるよう、空配列またはゼロ値の本文を返します。
type ReportHandler struct {
	svc    ReportService
	logger logrus.FieldLogger
}

// NewReportHandler は ReportHandler を生成します。
func NewReportHandler(svc ReportService, logger logrus.FieldLogger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger}
}

// DashboardStats はダッシュボードの概要を返します。
func (h *ReportHandler) DashboardStats(c *gin.Context) {
	serveObject(c, h.logger, h.svc.DashboardStats, &report.DashboardStats{}, "Failed to fetch dashboard statistics")
}

// RecentActivity は最近の入社を返します。
func (h *ReportHandler) RecentActivity(c *gin.Context) {
	serveList(c, h.logger, h.svc.RecentActivity)
}

// DashboardDepartmentStats は部署別の在籍数を返します。
func (h *ReportHandler) DashboardDepartmentStats(c *gin.Context) {
	serveList(c, h.logger, h.svc.DashboardDepartmentStats)
}

// DepartmentStats は部署ごとの給与集計を返します。
func (h *ReportHandler) DepartmentStats(c *gin.Context) {
	serveList(c, h.logger, h.svc.DepartmentStats)
}

// DashboardHiringTrends は直近 6 か月 (または ?months) の月別入社数を返します。
func (h *ReportHandler) DashboardHiringTrends(c *gin.Context) {
	h.hiringTrends(c, report.DashboardHiringMonths)
}

// ReportHiringTrends は直近 12 か月 (または ?months) の月別入社数を返します。
func (h *ReportHandler) ReportHiringTrends(c *gin.Context) {
	h.hiringTrends(c, report.ReportHiringMonths)
}

func (h *ReportHandler) hiringTrends(c *gin.Context, defaultMonths int) {
	months, ok := queryPositiveInt(c, "months", defaultMonths)
	if !ok {
		respondError(c, h.logger, report.ErrInvalidMonths)
		return
	}
	serveList(c, h.logger, func(ctx context.Context) ([]report.MonthlyHires, error) {
		return h.svc.HiringTrends(ctx, months)
	})
}

// SalaryAnalysis は給与分析を返します。
func (h *ReportHandler) SalaryAnalysis(c *gin.Context) {
	serveObject(c, h.logger, h.svc.SalaryAnalysis, &report.SalaryAnalysis{
		SalaryDistribution: []report.BucketCount{},
		DepartmentSalaries: []report.DepartmentSalary{},
	}, "Failed to fetch salary analysis")
}

// SkillsAnalysis はスキル分析を返します。
func (h *ReportHandler) SkillsAnalysis(c *gin.Context) {
	serveObject(c, h.logger, h.svc.SkillsAnalysis, &report.SkillsAnalysis{
		TopSkills:          []report.SkillFrequency{},
		SkillsByDepartment: []report.DepartmentSkill{},
	}, "Failed to fetch skills analysis")
}

// TenureAnalysis は勤続年数の分布を返します。
func (h *ReportHandler) TenureAnalysis(c *gin.Context) {
	serveList(c, h.logger, h.svc.TenureAnalysis)
}

// PerformanceMetrics は定着率などの指標を返します。
func (h *ReportHandler) PerformanceMetrics(c *gin.Context) {
	serveObject(c, h.logger, h.svc.PerformanceMetrics, &report.PerformanceMetrics{
		PromotionRate:     report.Unavailable(metricsFailureReason),
		SatisfactionScore: report.Unavailable(metricsFailureReason),
	}, "Failed to fetch performance metrics")
}

// GrowthAnalytics は成長分析を返します。
func (h *ReportHandler) GrowthAnalytics(c *gin.Context) {
	serveObject(c, h.logger, h.svc.GrowthAnalytics, &report.GrowthAnalytics{
		MonthlyGrowth:    []report.MonthlyGrowth{},
		DepartmentGrowth: []report.DepartmentGrowth{},
	}, "Failed to fetch growth analytics")
}

// RealtimeMetrics はリアルタイム指標を返します。
func (h *ReportHandler) RealtimeMetrics(c *gin.Context) {
	serveObject(c, h.logger, h.svc.RealtimeMetrics, &report.RealtimeMetrics{
		DepartmentActivity: []report.DepartmentActivity{},
	}, "Failed to fetch real-time metrics")
}

// UpcomingAnniversaries は ?days 日以内 (既定 30 日) の入社記念日を返します。
func (h *ReportHandler) UpcomingAnniversaries(c *gin.Context) {
	days, ok := queryPositiveInt(c, "days", report.DefaultAnniversaryDays)
	if !ok {
		respondError(c, h.logger, report.ErrInvalidDays)
		return
	}
	serveList(c, h.logger, func(ctx context.Context) ([]report.Anniversary, error) {
		return h.svc.UpcomingAnniversaries(ctx, days)
	})
}

func serveList[T any](c *gin.Context, logger logrus.FieldLogger, fetch func(context.Context) ([]T, error)) {
	items, err := fetch(c.Request.Context())
	if err != nil {
		respondEmptyList(c, logger, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func serveObject[T any](c *gin.Context, logger logrus.FieldLogger, fetch func(context.Context) (*T, error), zero *T, failure string) {
	result, err := fetch(c.Request.Context())
	if err != nil {
		respondZeroObject(c, logger, err, zero, failure)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondEmptyList は入力エラー以外の失敗で空配列を返します。
func respondEmptyList(c *gin.Context, logger logrus.FieldLogger, err error) {
	code, _ := toHTTPError(err)
	if code < http.StatusInternalServerError {
		respondError(c, logger, err)
		return
	}
	logError(c, logger, code, err)
	c.JSON(code, []struct{}{})
}

// respondZeroObject はゼロ値の本文に error を加えて返します。
func respondZeroObject(c *gin.Context, logger logrus.FieldLogger, err error, zero any, failure string) {
	code, _ := toHTTPError(err)
	if code < http.StatusInternalServerError {
		respondError(c, logger, err)
		return
	}
	logError(c, logger, code, err)

	body := map[string]any{}
	if raw, marshalErr := json.Marshal(zero); marshalErr == nil {
		_ = json.Unmarshal(raw, &body)
	}
	body["error"] = failure
	c.JSON(code, body)
}

func queryPositiveInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
