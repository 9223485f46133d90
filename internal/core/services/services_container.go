package services

import (
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/observability/metrics"
	"github.com/mohaaw/shop-erp-sub000/internal/platform/config"
)

// ResolverConfigFrom maps configuration keys onto the resolver's chart codes.
func ResolverConfigFrom(cfg *config.Config) ResolverConfig {
	rc := DefaultResolverConfig()
	if cfg == nil {
		return rc
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&rc.ReceivableCode, cfg.LedgerReceivableCode)
	override(&rc.PayableCode, cfg.LedgerPayableCode)
	override(&rc.IncomeCode, cfg.LedgerIncomeCode)
	override(&rc.TaxPayableCode, cfg.LedgerTaxPayableCode)
	if len(cfg.LedgerCashAccountNames) > 0 {
		rc.CashAccountNames = cfg.LedgerCashAccountNames
	}
	return rc
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.LedgerMetrics) *portssvc.ServiceContainer {
	opts := []ServiceOption{WithMetrics(m)}

	container := &portssvc.ServiceContainer{}
	container.Resolver = NewLedgerAccountResolver(repos.AccountRepo, ResolverConfigFrom(cfg))
	container.Account = NewAccountService(repos.AccountRepo, opts...)
	container.Journal = NewJournalService(repos.TxManager, repos.JournalRepo, repos.AccountRepo, opts...)
	container.SalesInvoice = NewSalesInvoiceService(repos.TxManager, repos.InvoiceRepo, container.Journal, container.Resolver, opts...)
	container.PurchaseInvoice = NewPurchaseInvoiceService(repos.TxManager, repos.InvoiceRepo, repos.AccountRepo, container.Journal, container.Resolver, opts...)
	container.Payment = NewPaymentService(repos.TxManager, repos.PaymentRepo, repos.InvoiceRepo, container.Journal, container.Resolver, opts...)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.ReportingRepo, opts...)

	return container
}
