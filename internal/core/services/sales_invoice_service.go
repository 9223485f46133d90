package services

import (
	"context"
	"fmt"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
)

type salesPolicy struct {
	resolver portssvc.LedgerAccountResolver
}

// NewSalesInvoiceService creates the customer invoice lifecycle.
func NewSalesInvoiceService(txManager portsrepo.TransactionManager, invoiceRepo portsrepo.InvoiceRepositoryFacade, journal portssvc.JournalPoster, resolver portssvc.LedgerAccountResolver, options ...ServiceOption) portssvc.InvoiceSvcFacade {
	return newInvoiceService(domain.SalesInvoice, &salesPolicy{resolver: resolver}, txManager, invoiceRepo, journal, options)
}

func (p *salesPolicy) validateItem(_ context.Context, _ int, _ dto.InvoiceItemRequest) error {
	return nil
}

// journalLines debits Receivable for the total, credits Income for the
// pre-tax amount and credits Tax Payable for the tax when there is any.
func (p *salesPolicy) journalLines(ctx context.Context, inv *domain.Invoice) ([]domain.JournalItem, error) {
	receivable, arErr := p.resolver.Receivable(ctx)
	income, incErr := p.resolver.Income(ctx)
	if err := missingRoles(arErr, incErr); err != nil {
		return nil, err
	}

	lines := []domain.JournalItem{
		domain.DebitLine(receivable.AccountID, inv.TotalAmount),
		domain.CreditLine(income.AccountID, inv.TotalAmount.Sub(inv.TaxAmount)),
	}
	if inv.TaxAmount.IsPositive() {
		taxPayable, err := p.resolver.TaxPayable(ctx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.CreditLine(taxPayable.AccountID, inv.TaxAmount))
	}
	return lines, nil
}

func (p *salesPolicy) description(inv *domain.Invoice) string {
	return fmt.Sprintf("Sales invoice %s", inv.Number)
}
