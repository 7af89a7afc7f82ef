package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/motorbill/motorbill/internal/auth"
	"github.com/motorbill/motorbill/internal/clock"
	"github.com/motorbill/motorbill/internal/company"
	companydomain "github.com/motorbill/motorbill/internal/company/domain"
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/customer"
	customerdomain "github.com/motorbill/motorbill/internal/customer/domain"
	"github.com/motorbill/motorbill/internal/invoice"
	invoicedomain "github.com/motorbill/motorbill/internal/invoice/domain"
	"github.com/motorbill/motorbill/internal/mileage"
	mileagedomain "github.com/motorbill/motorbill/internal/mileage/domain"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"github.com/motorbill/motorbill/internal/providers"
	"github.com/motorbill/motorbill/internal/providers/pdf"
	"github.com/motorbill/motorbill/internal/serviceitem"
	serviceitemdomain "github.com/motorbill/motorbill/internal/serviceitem/domain"
	"github.com/motorbill/motorbill/internal/sidecar"
	"github.com/motorbill/motorbill/internal/vehicle"
	vehicledomain "github.com/motorbill/motorbill/internal/vehicle/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(metrics.New),
	sidecar.Module,
	clock.Module,
	customer.Module,
	vehicle.Module,
	mileage.Module,
	invoice.Module,
	serviceitem.Module,
	company.Module,
	auth.Module,
	providers.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(log, registry)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	customerSvc    customerdomain.Service
	vehicleSvc     vehicledomain.Service
	mileageSvc     mileagedomain.Service
	invoiceSvc     invoicedomain.Service
	serviceItemSvc serviceitemdomain.Service
	companySvc     companydomain.Service
	authSvc        *auth.Service
	pdfRenderer    pdf.Renderer
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	CustomerSvc    customerdomain.Service
	VehicleSvc     vehicledomain.Service
	MileageSvc     mileagedomain.Service
	InvoiceSvc     invoicedomain.Service
	ServiceItemSvc serviceitemdomain.Service
	CompanySvc     companydomain.Service
	AuthSvc        *auth.Service
	PDFRenderer    pdf.Renderer
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("http"),
		genID:          p.GenID,
		clock:          p.Clock,
		customerSvc:    p.CustomerSvc,
		vehicleSvc:     p.VehicleSvc,
		mileageSvc:     p.MileageSvc,
		invoiceSvc:     p.InvoiceSvc,
		serviceItemSvc: p.ServiceItemSvc,
		companySvc:     p.CompanySvc,
		authSvc:        p.AuthSvc,
		pdfRenderer:    p.PDFRenderer,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/search", s.SearchCustomers)
	api.GET("/customers/:id", s.GetCustomer)
	api.PUT("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)
	api.GET("/customers/:id/vehicles", s.ListCustomerVehicles)
	api.GET("/customers/:id/invoices", s.ListCustomerInvoices)

	api.POST("/vehicles", s.CreateVehicle)
	api.GET("/vehicles", s.ListVehicles)
	api.GET("/vehicles/:id", s.GetVehicle)
	api.PUT("/vehicles/:id", s.UpdateVehicle)
	api.DELETE("/vehicles/:id", s.DeleteVehicle)
	api.GET("/vehicles/:id/invoices", s.ListVehicleInvoices)

	api.GET("/vehicles/:id/mileage", s.ListMileage)
	api.POST("/vehicles/:id/mileage", s.RecordMileage)
	api.POST("/vehicles/:id/mileage/edit", s.EditMileage)
	api.POST("/vehicles/:id/mileage/import", s.ImportMileage)
	api.GET("/vehicles/:id/mileage/latest", s.LatestMileage)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)
	api.POST("/invoices/check-duplicates", s.CheckDuplicateServices)

	api.POST("/service-items", s.CreateServiceItem)
	api.GET("/service-items", s.ListServiceItems)
	api.GET("/service-items/:id", s.GetServiceItem)
	api.PUT("/service-items/:id", s.UpdateServiceItem)
	api.DELETE("/service-items/:id", s.DeleteServiceItem)

	api.GET("/company", s.GetCompany)
	api.PUT("/company", s.UpdateCompany)

	api.POST("/auth/verify", s.VerifyCredentials)
	api.POST("/auth/change-password", s.ChangePassword)
}
