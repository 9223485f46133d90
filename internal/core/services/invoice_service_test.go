package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/core/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var invoiceDay = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

func salesDraft(id string) *domain.Invoice {
	inv := &domain.Invoice{
		InvoiceID:      id,
		InvoiceType:    domain.SalesInvoice,
		Number:         "INV-" + id,
		CounterpartyID: "cust-1",
		InvoiceDate:    invoiceDay,
		DueDate:        invoiceDay.AddDate(0, 0, 30),
		Status:         domain.InvoiceDraft,
		Items: []domain.InvoiceItem{
			{LineNo: 1, Quantity: dec("2"), UnitPrice: dec("100"), TaxRate: dec("10")},
		},
	}
	inv.ComputeTotals()
	return inv
}

func TestSalesInvoice_CreateComputesTotals(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, new(MockJournalPoster), new(MockResolver))
	invoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Number:         "INV-1",
		CounterpartyID: "cust-1",
		InvoiceDate:    invoiceDay,
		DueDate:        invoiceDay.AddDate(0, 0, 30),
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p-1", Quantity: dec("2"), UnitPrice: dec("100"), TaxRate: dec("10")},
			{ProductID: "p-2", Quantity: dec("1"), UnitPrice: dec("50")},
		},
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceDraft, inv.Status)
	assert.Equal(t, domain.SalesInvoice, inv.InvoiceType)
	assert.True(t, inv.Subtotal.Equal(dec("250")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.TaxAmount.Equal(dec("20")), "tax %s", inv.TaxAmount)
	assert.True(t, inv.TotalAmount.Equal(dec("270")), "total %s", inv.TotalAmount)
	assert.True(t, inv.AmountPaid.IsZero())
	require.Len(t, inv.Items, 2)
	assert.True(t, inv.Items[0].LineTotal.Equal(dec("220")))
	assert.Equal(t, inv.InvoiceID, inv.Items[1].InvoiceID)
	invoiceRepo.AssertExpectations(t)
}

func TestSalesInvoice_CreateDuplicateNumber(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, new(MockJournalPoster), new(MockResolver))
	invoiceRepo.On("SaveInvoice", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Number:         "INV-1",
		CounterpartyID: "cust-1",
		InvoiceDate:    invoiceDay,
		DueDate:        invoiceDay,
		Items:          []dto.InvoiceItemRequest{{Quantity: dec("1"), UnitPrice: dec("5")}},
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestSalesInvoice_CreateRejectsDueBeforeInvoiceDate(t *testing.T) {
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, new(MockInvoiceRepository), new(MockJournalPoster), new(MockResolver))

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Number:         "INV-1",
		CounterpartyID: "cust-1",
		InvoiceDate:    invoiceDay,
		DueDate:        invoiceDay.AddDate(0, 0, -1),
		Items:          []dto.InvoiceItemRequest{{Quantity: dec("1"), UnitPrice: dec("5")}},
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSalesInvoice_PostBuildsReceivableIncomeAndTaxLines(t *testing.T) {
	ctx := context.Background()
	invoiceRepo := new(MockInvoiceRepository)
	journal := new(MockJournalPoster)
	resolver := new(MockResolver)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, journal, resolver)

	inv := salesDraft("s1")
	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "s1").Return(inv, nil).Once()
	resolver.On("role", mock.Anything, "receivable").Return(&domain.Account{AccountID: "ar"}, nil)
	resolver.On("role", mock.Anything, "income").Return(&domain.Account{AccountID: "sales"}, nil)
	resolver.On("role", mock.Anything, "tax_payable").Return(&domain.Account{AccountID: "vat"}, nil)
	journal.On("Post", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len(e.Items) == 3 &&
			e.Items[0].AccountID == "ar" && e.Items[0].Side == domain.Debit && e.Items[0].Amount.Equal(dec("220")) &&
			e.Items[1].AccountID == "sales" && e.Items[1].Side == domain.Credit && e.Items[1].Amount.Equal(dec("200")) &&
			e.Items[2].AccountID == "vat" && e.Items[2].Side == domain.Credit && e.Items[2].Amount.Equal(dec("20")) &&
			e.Reference == "INV-s1" && e.EntryDate.Equal(invoiceDay)
	}), "user-1").Return(&domain.JournalEntry{JournalEntryID: "je-1"}, nil).Once()
	invoiceRepo.On("TransitionInvoiceStatus", mock.Anything, "s1", domain.InvoiceDraft, domain.InvoicePosted, "je-1", "user-1", mock.Anything).Return(nil).Once()

	posted, err := svc.PostInvoice(ctx, "s1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePosted, posted.Status)
	assert.Equal(t, "je-1", posted.JournalEntryID)
	journal.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestSalesInvoice_PostWithoutTaxSkipsTaxAccount(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	journal := new(MockJournalPoster)
	resolver := new(MockResolver)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, journal, resolver)

	inv := salesDraft("s2")
	inv.Items[0].TaxRate = dec("0")
	inv.ComputeTotals()
	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "s2").Return(inv, nil).Once()
	resolver.On("role", mock.Anything, "receivable").Return(&domain.Account{AccountID: "ar"}, nil)
	resolver.On("role", mock.Anything, "income").Return(&domain.Account{AccountID: "sales"}, nil)
	journal.On("Post", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool { return len(e.Items) == 2 }), "user-1").
		Return(&domain.JournalEntry{JournalEntryID: "je-2"}, nil).Once()
	invoiceRepo.On("TransitionInvoiceStatus", mock.Anything, "s2", domain.InvoiceDraft, domain.InvoicePosted, "je-2", "user-1", mock.Anything).Return(nil).Once()

	_, err := svc.PostInvoice(context.Background(), "s2", "user-1")

	require.NoError(t, err)
	resolver.AssertNotCalled(t, "role", mock.Anything, "tax_payable")
}

func TestSalesInvoice_SecondPostIsInvalidState(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	journal := new(MockJournalPoster)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, journal, new(MockResolver))

	inv := salesDraft("s3")
	inv.Status = domain.InvoicePosted
	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "s3").Return(inv, nil).Once()

	_, err := svc.PostInvoice(context.Background(), "s3", "user-1")

	var invalid *apperrors.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "POSTED", invalid.Current)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	journal.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

func TestSalesInvoice_PostReportsEveryMissingRole(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	journal := new(MockJournalPoster)
	resolver := new(MockResolver)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, journal, resolver)

	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "s4").Return(salesDraft("s4"), nil).Once()
	resolver.On("role", mock.Anything, "receivable").Return(nil, &apperrors.ChartOfAccountsIncompleteError{Missing: []string{services.RoleReceivable}})
	resolver.On("role", mock.Anything, "income").Return(nil, &apperrors.ChartOfAccountsIncompleteError{Missing: []string{services.RoleIncome}})

	_, err := svc.PostInvoice(context.Background(), "s4", "user-1")

	var incomplete *apperrors.ChartOfAccountsIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{services.RoleReceivable, services.RoleIncome}, incomplete.Missing)
	journal.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "TransitionInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSalesInvoice_CancelOnlyFromDraft(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, invoiceRepo, new(MockJournalPoster), new(MockResolver))

	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "d").Return(salesDraft("d"), nil).Once()
	invoiceRepo.On("TransitionInvoiceStatus", mock.Anything, "d", domain.InvoiceDraft, domain.InvoiceCancelled, "", "user-1", mock.Anything).Return(nil).Once()
	cancelled, err := svc.CancelInvoice(context.Background(), "d", "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, cancelled.Status)

	paid := salesDraft("p")
	paid.Status = domain.InvoicePaid
	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "p").Return(paid, nil).Once()
	_, err = svc.CancelInvoice(context.Background(), "p", "user-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestSalesInvoice_ListRejectsUnknownStatus(t *testing.T) {
	svc := services.NewSalesInvoiceService(&fakeTxManager{}, new(MockInvoiceRepository), new(MockJournalPoster), new(MockResolver))
	status := domain.InvoiceStatus("ARCHIVED")

	_, err := svc.ListInvoices(context.Background(), &status)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPurchaseInvoice_CreateRequiresLineAccount(t *testing.T) {
	svc := services.NewPurchaseInvoiceService(&fakeTxManager{}, new(MockInvoiceRepository), new(MockAccountRepository), new(MockJournalPoster), new(MockResolver))

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Number:         "BILL-1",
		CounterpartyID: "supp-1",
		InvoiceDate:    invoiceDay,
		DueDate:        invoiceDay,
		Items:          []dto.InvoiceItemRequest{{Quantity: dec("1"), UnitPrice: dec("5")}},
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPurchaseInvoice_CreateRejectsTaxRate(t *testing.T) {
	svc := services.NewPurchaseInvoiceService(&fakeTxManager{}, new(MockInvoiceRepository), new(MockAccountRepository), new(MockJournalPoster), new(MockResolver))

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Number:         "BILL-1",
		CounterpartyID: "supp-1",
		InvoiceDate:    invoiceDay,
		DueDate:        invoiceDay,
		Items:          []dto.InvoiceItemRequest{{AccountID: "exp", Quantity: dec("1"), UnitPrice: dec("5"), TaxRate: dec("5")}},
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPurchaseInvoice_PostDebitsEachLineAndCreditsPayable(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	journal := new(MockJournalPoster)
	resolver := new(MockResolver)
	svc := services.NewPurchaseInvoiceService(&fakeTxManager{}, invoiceRepo, new(MockAccountRepository), journal, resolver)

	inv := &domain.Invoice{
		InvoiceID:   "b1",
		InvoiceType: domain.PurchaseInvoice,
		Number:      "BILL-1",
		InvoiceDate: invoiceDay,
		Status:      domain.InvoiceDraft,
		Items: []domain.InvoiceItem{
			{LineNo: 1, AccountID: "rent", Quantity: dec("1"), UnitPrice: dec("300")},
			{LineNo: 2, AccountID: "supplies", Quantity: dec("4"), UnitPrice: dec("12.5")},
		},
	}
	inv.ComputeTotals()
	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.PurchaseInvoice, "b1").Return(inv, nil).Once()
	resolver.On("role", mock.Anything, "payable").Return(&domain.Account{AccountID: "ap"}, nil)
	journal.On("Post", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len(e.Items) == 3 &&
			e.Items[0].AccountID == "rent" && e.Items[0].Side == domain.Debit && e.Items[0].Amount.Equal(dec("300")) &&
			e.Items[1].AccountID == "supplies" && e.Items[1].Side == domain.Debit && e.Items[1].Amount.Equal(dec("50")) &&
			e.Items[2].AccountID == "ap" && e.Items[2].Side == domain.Credit && e.Items[2].Amount.Equal(dec("350"))
	}), "user-1").Return(&domain.JournalEntry{JournalEntryID: "je-b1"}, nil).Once()
	invoiceRepo.On("TransitionInvoiceStatus", mock.Anything, "b1", domain.InvoiceDraft, domain.InvoicePosted, "je-b1", "user-1", mock.Anything).Return(nil).Once()

	posted, err := svc.PostInvoice(context.Background(), "b1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePosted, posted.Status)
	journal.AssertExpectations(t)
}

func TestPurchaseInvoice_PostWithoutPayableIsIncomplete(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	resolver := new(MockResolver)
	svc := services.NewPurchaseInvoiceService(&fakeTxManager{}, invoiceRepo, new(MockAccountRepository), new(MockJournalPoster), resolver)

	inv := &domain.Invoice{InvoiceID: "b2", InvoiceType: domain.PurchaseInvoice, Status: domain.InvoiceDraft}
	invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.PurchaseInvoice, "b2").Return(inv, nil).Once()
	resolver.On("role", mock.Anything, "payable").Return(nil, &apperrors.ChartOfAccountsIncompleteError{Missing: []string{services.RolePayable}})

	_, err := svc.PostInvoice(context.Background(), "b2", "user-1")

	assert.ErrorIs(t, err, apperrors.ErrChartOfAccountsIncomplete)
}
