package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/middleware"
	"github.com/noah-isme/roster-availability-api/internal/service"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
	"github.com/noah-isme/roster-availability-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/roster-availability-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/roster-availability-api/pkg/middleware/requestid"
	"github.com/noah-isme/roster-availability-api/pkg/response"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Patterns     *WeeklyPatternHandler
	Requests     *TraderRequestHandler
	Preferences  *PreferenceHandler
	Availability *AvailabilityHandler
	Reports      *ReportHandler
	Ops          *MetricsHandler
}

// RouterOptions toggles optional surfaces.
type RouterOptions struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableMetrics  bool
	EnableExports  bool
}

// NewRouter builds the gin engine with the standard middleware chain.
func NewRouter(opts RouterOptions, h Handlers, logr *zap.Logger, metrics *service.MetricsService) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.EnableMetrics {
		r.Use(middleware.Metrics(metrics))
	}
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	r.GET("/health", h.Ops.Health)
	r.GET("/ready", h.Ops.Ready)
	if opts.EnableMetrics {
		r.GET("/metrics", h.Ops.Prometheus)
	}

	prefix := "/" + strings.Trim(opts.APIPrefix, "/")
	if prefix == "/" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)

	traders := api.Group("/traders/:id")
	traders.GET("/weekly-pattern", h.Patterns.Get)
	traders.PUT("/weekly-pattern", h.Patterns.Save)
	traders.GET("/requests", h.Requests.ListForTrader)
	traders.POST("/requests", h.Requests.Create)
	traders.GET("/requests/approved", h.Requests.ListApproved)
	traders.GET("/preferences/days-off", h.Preferences.GetDaysOff)
	traders.PUT("/preferences/days-off", h.Preferences.SetDaysOff)
	traders.GET("/availability", h.Availability.Week)

	requests := api.Group("/requests")
	requests.GET("", h.Requests.ListAll)
	requests.GET("/:id", h.Requests.Get)
	requests.PATCH("/:id", h.Requests.Update)
	requests.DELETE("/:id", h.Requests.Delete)
	requests.POST("/:id/approve", h.Requests.Approve)
	requests.POST("/:id/reject", h.Requests.Reject)

	api.GET("/preferences/days-off", h.Preferences.Summary)
	api.GET("/availability", h.Availability.Cohort)

	api.GET("/reports/daily-resources", h.Reports.DailyResources)
	if opts.EnableExports {
		api.GET("/reports/daily-resources/export", h.Reports.ExportDailyResources)
	} else {
		api.GET("/reports/daily-resources/export", func(c *gin.Context) {
			response.Error(c, appErrors.New("EXPORTS_DISABLED", http.StatusNotFound, "exports are disabled"))
		})
	}

	return r
}
