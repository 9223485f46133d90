package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/core/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	invoiceRepo *MockInvoiceRepository
	paymentRepo *MockPaymentRepository
	journal     *MockJournalPoster
	resolver    *MockResolver
	svc         portssvc.PaymentSvcFacade
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.invoiceRepo = new(MockInvoiceRepository)
	s.paymentRepo = new(MockPaymentRepository)
	s.journal = new(MockJournalPoster)
	s.resolver = new(MockResolver)
	s.svc = services.NewPaymentService(&fakeTxManager{}, s.paymentRepo, s.invoiceRepo, s.journal, s.resolver)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) postedSales(paid string) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:   "inv-1",
		InvoiceType: domain.SalesInvoice,
		Number:      "INV-1",
		Status:      domain.InvoicePosted,
		TotalAmount: dec("220"),
		AmountPaid:  dec(paid),
	}
}

func receipt(amount string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		PaymentDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Direction:   domain.PaymentReceive,
		Amount:      dec(amount),
		Method:      domain.MethodBank,
		InvoiceID:   "inv-1",
		InvoiceType: domain.SalesInvoice,
	}
}

func (s *PaymentServiceTestSuite) expectReceiptPosting(amount string) {
	s.resolver.On("role", mock.Anything, "cash").Return(&domain.Account{AccountID: "bank"}, nil)
	s.resolver.On("role", mock.Anything, "receivable").Return(&domain.Account{AccountID: "ar"}, nil)
	s.journal.On("Post", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len(e.Items) == 2 &&
			e.Items[0].AccountID == "bank" && e.Items[0].Side == domain.Debit && e.Items[0].Amount.Equal(dec(amount)) &&
			e.Items[1].AccountID == "ar" && e.Items[1].Side == domain.Credit && e.Items[1].Amount.Equal(dec(amount))
	}), "user-1").Return(&domain.JournalEntry{JournalEntryID: "je-pay"}, nil).Once()
	s.paymentRepo.On("SavePayment", mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.JournalEntryID == "je-pay" && p.InvoiceID == "inv-1" && p.Amount.Equal(dec(amount))
	})).Return(nil).Once()
}

func (s *PaymentServiceTestSuite) TestFullPaymentMarksInvoicePaid() {
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "inv-1").Return(s.postedSales("0"), nil).Once()
	s.expectReceiptPosting("220")
	s.invoiceRepo.On("RecordInvoicePayment", mock.Anything, "inv-1", mock.MatchedBy(func(v decimal.Decimal) bool {
		return v.Equal(dec("220"))
	}), domain.InvoicePaid, "user-1", mock.Anything).Return(nil).Once()

	payment, err := s.svc.CreatePayment(s.ctx, receipt("220"), "user-1")

	s.Require().NoError(err)
	s.Equal("je-pay", payment.JournalEntryID)
	s.Equal(domain.SalesInvoice, payment.InvoiceType)
	s.invoiceRepo.AssertExpectations(s.T())
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestPartialPaymentKeepsInvoicePosted() {
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "inv-1").Return(s.postedSales("20"), nil).Once()
	s.expectReceiptPosting("100")
	s.invoiceRepo.On("RecordInvoicePayment", mock.Anything, "inv-1", mock.MatchedBy(func(v decimal.Decimal) bool {
		return v.Equal(dec("120"))
	}), domain.InvoicePosted, "user-1", mock.Anything).Return(nil).Once()

	_, err := s.svc.CreatePayment(s.ctx, receipt("100"), "user-1")

	s.Require().NoError(err)
	s.invoiceRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestOverpaymentRejected() {
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "inv-1").Return(s.postedSales("200"), nil).Once()

	_, err := s.svc.CreatePayment(s.ctx, receipt("20.01"), "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrPaymentExceedsBalance)
	s.journal.AssertNotCalled(s.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestDirectionMustMatchInvoiceType() {
	req := receipt("10")
	req.Direction = domain.PaymentSend

	_, err := s.svc.CreatePayment(s.ctx, req, "user-1")

	s.ErrorIs(err, services.ErrPaymentDirectionMismatch)
	s.invoiceRepo.AssertNotCalled(s.T(), "FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestNonPositiveAmountRejected() {
	_, err := s.svc.CreatePayment(s.ctx, receipt("0"), "user-1")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestDraftInvoiceCannotBePaid() {
	inv := s.postedSales("0")
	inv.Status = domain.InvoiceDraft
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "inv-1").Return(inv, nil).Once()

	_, err := s.svc.CreatePayment(s.ctx, receipt("10"), "user-1")

	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PaymentServiceTestSuite) TestMissingInvoiceIsNotFound() {
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "inv-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.svc.CreatePayment(s.ctx, receipt("10"), "user-1")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PaymentServiceTestSuite) TestDisbursementDebitsPayableCreditsCash() {
	bill := &domain.Invoice{
		InvoiceID:   "bill-1",
		InvoiceType: domain.PurchaseInvoice,
		Number:      "BILL-1",
		Status:      domain.InvoicePosted,
		TotalAmount: dec("350"),
		AmountPaid:  dec("0"),
	}
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.PurchaseInvoice, "bill-1").Return(bill, nil).Once()
	s.resolver.On("role", mock.Anything, "cash").Return(&domain.Account{AccountID: "bank"}, nil)
	s.resolver.On("role", mock.Anything, "payable").Return(&domain.Account{AccountID: "ap"}, nil)
	s.journal.On("Post", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len(e.Items) == 2 &&
			e.Items[0].AccountID == "ap" && e.Items[0].Side == domain.Debit &&
			e.Items[1].AccountID == "bank" && e.Items[1].Side == domain.Credit
	}), "user-1").Return(&domain.JournalEntry{JournalEntryID: "je-send"}, nil).Once()
	s.paymentRepo.On("SavePayment", mock.Anything, mock.Anything).Return(nil).Once()
	s.invoiceRepo.On("RecordInvoicePayment", mock.Anything, "bill-1", mock.Anything, domain.InvoicePaid, "user-1", mock.Anything).Return(nil).Once()

	payment, err := s.svc.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		PaymentDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Direction:   domain.PaymentSend,
		Amount:      dec("350"),
		Method:      domain.MethodCash,
		InvoiceID:   "bill-1",
		InvoiceType: domain.PurchaseInvoice,
	}, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.PaymentSend, payment.Direction)
	s.journal.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestMissingCashAccountIsIncomplete() {
	s.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, domain.SalesInvoice, "inv-1").Return(s.postedSales("0"), nil).Once()
	s.resolver.On("role", mock.Anything, "cash").Return(nil, &apperrors.ChartOfAccountsIncompleteError{Missing: []string{services.RoleCash}})
	s.resolver.On("role", mock.Anything, "receivable").Return(&domain.Account{AccountID: "ar"}, nil)

	_, err := s.svc.CreatePayment(s.ctx, receipt("10"), "user-1")

	var incomplete *apperrors.ChartOfAccountsIncompleteError
	s.Require().ErrorAs(err, &incomplete)
	s.Equal([]string{services.RoleCash}, incomplete.Missing)
}
