package sqlite

import (
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"gorm.io/gorm"
)

func NewRepositoryProvider(db *gorm.DB) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db}
	return portsrepo.RepositoryProvider{
		TxManager:     &GormTransactionManager{BaseRepository: base},
		AccountRepo:   &GormAccountRepository{BaseRepository: base},
		JournalRepo:   &GormJournalRepository{BaseRepository: base},
		InvoiceRepo:   &GormInvoiceRepository{BaseRepository: base},
		PaymentRepo:   &GormPaymentRepository{BaseRepository: base},
		ReportingRepo: &gormReportingRepository{BaseRepository: base},
	}
}
