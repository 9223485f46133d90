package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/middleware"
	"github.com/mohaaw/shop-erp-sub000/internal/platform/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
) {
	registerDecimalValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterAccountRoutes(v1, services.Account)
	RegisterJournalRoutes(v1, services.Journal)
	RegisterInvoiceRoutes(v1, "/sales-invoices", domain.SalesInvoice, services.SalesInvoice)
	RegisterInvoiceRoutes(v1, "/purchase-invoices", domain.PurchaseInvoice, services.PurchaseInvoice)
	RegisterPaymentRoutes(v1, services.Payment)
	RegisterReportingRoutes(v1, services.Reporting)
}
