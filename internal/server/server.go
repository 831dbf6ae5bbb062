package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/finvo/finvo/internal/assistant"
	assistantdomain "github.com/finvo/finvo/internal/assistant/domain"
	"github.com/finvo/finvo/internal/auth"
	authdomain "github.com/finvo/finvo/internal/auth/domain"
	"github.com/finvo/finvo/internal/config"
	"github.com/finvo/finvo/internal/invoice"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	"github.com/finvo/finvo/internal/observability"
	obsmiddleware "github.com/finvo/finvo/internal/observability/logger"
	obsmetrics "github.com/finvo/finvo/internal/observability/metrics"
	"github.com/finvo/finvo/internal/report"
	reportdomain "github.com/finvo/finvo/internal/report/domain"
	"github.com/prometheus/client_golang/prometheus"
)

var Module = fx.Module("http.server",
	auth.Module,
	invoice.Module,
	report.Module,
	assistant.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, registry *prometheus.Registry, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", obsmetrics.Handler(registry))

	return r
}

func registerGin(obsCfg observability.Config, registry *prometheus.Registry, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, registry, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	authSvc      authdomain.Service
	invoiceSvc   invoicedomain.Service
	reportSvc    reportdomain.Service
	assistantSvc assistantdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	AuthSvc      authdomain.Service
	InvoiceSvc   invoicedomain.Service
	ReportSvc    reportdomain.Service
	AssistantSvc assistantdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authSvc:      p.AuthSvc,
		invoiceSvc:   p.InvoiceSvc,
		reportSvc:    p.ReportSvc,
		assistantSvc: p.AssistantSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.Register)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.AuthRequired(), s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
	authGroup.PUT("/me", s.AuthRequired(), s.UpdateMe)
	authGroup.DELETE("/me", s.AuthRequired(), s.DeleteMe)

	invoices := api.Group("/invoices", s.AuthRequired())
	invoices.POST("", s.CreateInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoice)
	invoices.PUT("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)

	reports := api.Group("/reports", s.AuthRequired())
	reports.GET("/summary", s.ReportSummary)

	ai := api.Group("/ai", s.AuthRequired())
	ai.POST("/parse-text", s.ParseInvoiceText)
	ai.POST("/generate-reminder", s.GenerateReminder)
	ai.GET("/dashboard-summary", s.DashboardSummary)
}
