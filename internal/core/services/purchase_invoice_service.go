package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
)

type purchasePolicy struct {
	resolver    portssvc.LedgerAccountResolver
	accountRepo portsrepo.AccountReader
}

// NewPurchaseInvoiceService creates the supplier invoice lifecycle.
func NewPurchaseInvoiceService(txManager portsrepo.TransactionManager, invoiceRepo portsrepo.InvoiceRepositoryFacade, accountRepo portsrepo.AccountReader, journal portssvc.JournalPoster, resolver portssvc.LedgerAccountResolver, options ...ServiceOption) portssvc.InvoiceSvcFacade {
	policy := &purchasePolicy{resolver: resolver, accountRepo: accountRepo}
	return newInvoiceService(domain.PurchaseInvoice, policy, txManager, invoiceRepo, journal, options)
}

// validateItem requires a postable expense or asset account on every line.
// Purchase lines carry no tax.
func (p *purchasePolicy) validateItem(ctx context.Context, lineNo int, item dto.InvoiceItemRequest) error {
	if !item.TaxRate.IsZero() {
		return fmt.Errorf("%w: item %d: purchase lines do not carry tax", apperrors.ErrValidation, lineNo)
	}
	if !item.UnitPrice.IsPositive() {
		return fmt.Errorf("%w: item %d unit price must be positive", apperrors.ErrValidation, lineNo)
	}
	accountID := strings.TrimSpace(item.AccountID)
	if accountID == "" {
		return fmt.Errorf("%w: item %d must name an expense or asset account", apperrors.ErrValidation, lineNo)
	}
	account, err := p.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("item %d account %s: %w", lineNo, accountID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to look up item %d account: %w", lineNo, err)
	}
	if account.IsGroup {
		return fmt.Errorf("%w: item %d: %w", apperrors.ErrValidation, lineNo, ErrGroupAccountNotPostable)
	}
	return nil
}

// journalLines credits Payable for the total and debits each line's account
// for that line's amount.
func (p *purchasePolicy) journalLines(ctx context.Context, inv *domain.Invoice) ([]domain.JournalItem, error) {
	payable, err := p.resolver.Payable(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalItem, 0, len(inv.Items)+1)
	for _, item := range inv.Items {
		lines = append(lines, domain.DebitLine(item.AccountID, item.Amount))
	}
	lines = append(lines, domain.CreditLine(payable.AccountID, inv.TotalAmount))
	return lines, nil
}

func (p *purchasePolicy) description(inv *domain.Invoice) string {
	return fmt.Sprintf("Purchase invoice %s", inv.Number)
}
