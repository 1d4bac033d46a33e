package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mgnrega/server/internal/dashboard"
	"mgnrega/server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardBuilder runs the aggregation pipeline for one request.
type DashboardBuilder interface {
	Build(ctx context.Context, req dashboard.Request) (*models.Dashboard, error)
}

// DistrictLister is the read-only slice of the district store the API needs.
type DistrictLister interface {
	List(ctx context.Context) ([]models.DistrictInfo, error)
	Count(ctx context.Context) (int64, error)
}

// ViewCounter answers aggregate usage questions.
type ViewCounter interface {
	TotalViews(ctx context.Context) (int64, error)
	TodayViews(ctx context.Context) (int64, error)
}

// Translator renders text in a target language, falling back to the input.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) string
	TranslateBatch(ctx context.Context, texts []string, targetLanguage string) []string
}

// ChartRenderer produces base64 chart images for a summary.
type ChartRenderer interface {
	GenerateAll(ctx context.Context, summary models.Summary) map[string]string
}

// CollectorRunner triggers a data-collection pass.
type CollectorRunner interface {
	CollectAll(ctx context.Context)
}

// Pinger reports storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger     *logrus.Logger
	builder    DashboardBuilder
	districts  DistrictLister
	analytics  ViewCounter
	translator Translator
	charts     ChartRenderer
	collector  CollectorRunner
	db         Pinger
}

func NewHandler(builder DashboardBuilder, districts DistrictLister, analytics ViewCounter, translator Translator, renderer ChartRenderer, collector CollectorRunner, db Pinger, logger *logrus.Logger) *Handler {
	return &Handler{
		logger:     logger,
		builder:    builder,
		districts:  districts,
		analytics:  analytics,
		translator: translator,
		charts:     renderer,
		collector:  collector,
		db:         db,
	}
}

func (h *Handler) buildRequest(c *gin.Context) dashboard.Request {
	return dashboard.Request{
		Lat:       c.Query("lat"),
		Lon:       c.Query("lon"),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// GetDashboard assembles the localized district dashboard.
func (h *Handler) GetDashboard(c *gin.Context) {
	result, err := h.builder.Build(c.Request.Context(), h.buildRequest(c))
	if err != nil {
		if errors.Is(err, dashboard.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No district data found. Please run data collection first.",
			})
			return
		}
		h.logger.WithError(err).Error("Dashboard build failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load dashboard data",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDistricts lists all known districts.
func (h *Handler) GetDistricts(c *gin.Context) {
	districts, err := h.districts.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list districts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(districts),
		"districts": districts,
	})
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

// Translate renders one text in the target language.
func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and targetLanguage are required"})
		return
	}

	translated := h.translator.Translate(c.Request.Context(), req.Text, req.TargetLanguage)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"original":   req.Text,
		"translated": translated,
		"language":   req.TargetLanguage,
	})
}

type translateBatchRequest struct {
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"targetLanguage"`
}

// TranslateBatch renders a list of texts, preserving order and length.
func (h *Handler) TranslateBatch(c *gin.Context) {
	var req translateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Texts == nil || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texts (array) and targetLanguage are required"})
		return
	}

	translated := h.translator.TranslateBatch(c.Request.Context(), req.Texts, req.TargetLanguage)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"original":   req.Texts,
		"translated": translated,
		"language":   req.TargetLanguage,
	})
}

// GetStats reports district and usage counters.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	districtCount, err := h.districts.Count(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count districts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalViews, err := h.analytics.TotalViews(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate total views")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	todayViews, err := h.analytics.TodayViews(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count today's views")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"districts":  districtCount,
		"totalViews": totalViews,
		"todayViews": todayViews,
	})
}

// GetCharts runs the dashboard pipeline and renders chart images for the
// resulting summary. Charts that fail to render are simply absent.
func (h *Handler) GetCharts(c *gin.Context) {
	result, err := h.builder.Build(c.Request.Context(), h.buildRequest(c))
	if err != nil {
		if errors.Is(err, dashboard.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No district data found. Please run data collection first."})
			return
		}
		h.logger.WithError(err).Error("Dashboard build failed for charts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	images := h.charts.GenerateAll(c.Request.Context(), result.Data.Summary)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"charts":  images,
	})
}

// Collect triggers a collection pass in the background.
func (h *Handler) Collect(c *gin.Context) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		h.collector.CollectAll(ctx)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Data collection started",
	})
}

// Health is the liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Database ping failed")
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
