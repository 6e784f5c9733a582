package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/onebase/onebase/internal/account"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	"github.com/onebase/onebase/internal/activity"
	activitydomain "github.com/onebase/onebase/internal/activity/domain"
	"github.com/onebase/onebase/internal/auth"
	authdomain "github.com/onebase/onebase/internal/auth/domain"
	"github.com/onebase/onebase/internal/auth/session"
	"github.com/onebase/onebase/internal/config"
	"github.com/onebase/onebase/internal/contact"
	contactdomain "github.com/onebase/onebase/internal/contact/domain"
	"github.com/onebase/onebase/internal/deal"
	dealdomain "github.com/onebase/onebase/internal/deal/domain"
	"github.com/onebase/onebase/internal/invoice"
	invoicedomain "github.com/onebase/onebase/internal/invoice/domain"
	"github.com/onebase/onebase/internal/invoicecustomer"
	invoicecustomerdomain "github.com/onebase/onebase/internal/invoicecustomer/domain"
	"github.com/onebase/onebase/internal/observability"
	obsmiddleware "github.com/onebase/onebase/internal/observability/logger"
	obsmetrics "github.com/onebase/onebase/internal/observability/metrics"
	"github.com/onebase/onebase/internal/organization"
	organizationdomain "github.com/onebase/onebase/internal/organization/domain"
	"github.com/onebase/onebase/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	organization.Module,
	account.Module,
	contact.Module,
	deal.Module,
	activity.Module,
	invoicecustomer.Module,
	invoice.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
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
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
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
	engine             *gin.Engine
	cfg                config.Config
	db                 *gorm.DB
	genID              *snowflake.Node
	sessions           *session.Manager
	authsvc            authdomain.Service
	organizationSvc    organizationdomain.Service
	accountSvc         accountdomain.Service
	contactSvc         contactdomain.Service
	dealSvc            dealdomain.Service
	activitySvc        activitydomain.Service
	invoiceCustomerSvc invoicecustomerdomain.Service
	invoiceSvc         invoicedomain.Service
	pdfProvider        pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin                *gin.Engine
	Cfg                config.Config
	DB                 *gorm.DB
	GenID              *snowflake.Node
	Sessions           *session.Manager
	Authsvc            authdomain.Service
	OrganizationSvc    organizationdomain.Service
	AccountSvc         accountdomain.Service
	ContactSvc         contactdomain.Service
	DealSvc            dealdomain.Service
	ActivitySvc        activitydomain.Service
	InvoiceCustomerSvc invoicecustomerdomain.Service
	InvoiceSvc         invoicedomain.Service
	PDFProvider        pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:             p.Gin,
		cfg:                p.Cfg,
		db:                 p.DB,
		genID:              p.GenID,
		sessions:           p.Sessions,
		authsvc:            p.Authsvc,
		organizationSvc:    p.OrganizationSvc,
		accountSvc:         p.AccountSvc,
		contactSvc:         p.ContactSvc,
		dealSvc:            p.DealSvc,
		activitySvc:        p.ActivitySvc,
		invoiceCustomerSvc: p.InvoiceCustomerSvc,
		invoiceSvc:         p.InvoiceSvc,
		pdfProvider:        p.PDFProvider,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(s.AuthRequired())

	api.GET("/organization", s.GetOrganization)

	// -------- Accounts --------
	api.GET("/accounts", s.ListAccounts)
	api.POST("/accounts", s.CreateAccount)
	api.GET("/accounts/:id", s.GetAccountByID)
	api.PATCH("/accounts/:id", s.UpdateAccount)
	api.DELETE("/accounts/:id", s.DeleteAccount)

	// -------- Contacts --------
	api.GET("/contacts", s.ListContacts)
	api.POST("/contacts", s.CreateContact)
	api.GET("/contacts/:id", s.GetContactByID)
	api.PATCH("/contacts/:id", s.UpdateContact)
	api.DELETE("/contacts/:id", s.DeleteContact)

	// -------- Deals --------
	api.GET("/deal-stages", s.ListDealStages)
	api.GET("/deals", s.ListDeals)
	api.POST("/deals", s.CreateDeal)
	api.GET("/deals/:id", s.GetDealByID)
	api.PATCH("/deals/:id", s.UpdateDeal)
	api.DELETE("/deals/:id", s.DeleteDeal)

	// -------- Activities --------
	api.GET("/activities", s.ListActivities)
	api.POST("/activities", s.CreateActivity)
	api.GET("/activities/:id", s.GetActivityByID)
	api.PATCH("/activities/:id", s.UpdateActivity)
	api.DELETE("/activities/:id", s.DeleteActivity)

	// -------- Invoice Customers --------
	api.GET("/invoice-customers", s.ListInvoiceCustomers)
	api.POST("/invoice-customers", s.CreateInvoiceCustomer)
	api.GET("/invoice-customers/:id", s.GetInvoiceCustomerByID)
	api.PATCH("/invoice-customers/:id", s.UpdateInvoiceCustomer)
	api.DELETE("/invoice-customers/:id", s.DeleteInvoiceCustomer)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)
}
