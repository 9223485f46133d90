package pgsql

import (
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     newPgxTransactionManager(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		PaymentRepo:   newPgxPaymentRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
