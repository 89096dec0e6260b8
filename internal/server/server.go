package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/bodega/internal/config"
	customerdomain "github.com/smallbiznis/bodega/internal/customer/domain"
	obsmetrics "github.com/smallbiznis/bodega/internal/observability/metrics"
	productdomain "github.com/smallbiznis/bodega/internal/product/domain"
	reportingdomain "github.com/smallbiznis/bodega/internal/reporting/domain"
	salesdomain "github.com/smallbiznis/bodega/internal/sales/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RunHTTP),
)

type Params struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	ProductSvc   productdomain.Service
	CustomerSvc  customerdomain.Service
	SalesSvc     salesdomain.Service
	ReportingSvc reportingdomain.Service
}

type Server struct {
	cfg          config.Config
	log          *zap.Logger
	productSvc   productdomain.Service
	customerSvc  customerdomain.Service
	salesSvc     salesdomain.Service
	reportingSvc reportingdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:          p.Config,
		log:          p.Log.Named("http.server"),
		productSvc:   p.ProductSvc,
		customerSvc:  p.CustomerSvc,
		salesSvc:     p.SalesSvc,
		reportingSvc: p.ReportingSvc,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	return r
}

func RegisterRoutes(engine *gin.Engine, s *Server) {
	v1 := engine.Group("/v1")

	v1.POST("/products", s.CreateProduct)
	v1.GET("/products", s.ListProducts)
	v1.GET("/products/low-stock", s.ListLowStockProducts)

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers", s.ListCustomers)

	v1.POST("/sales", s.RecordSale)
	v1.GET("/sales", s.ListSales)

	v1.GET("/reports/sales", s.GetSalesReport)
	v1.GET("/reports/overview", s.GetOverview)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
