package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	ReasonUnbalanced           = "unbalanced"
	ReasonValidation           = "validation"
	ReasonNotFound             = "not_found"
	ReasonInvalidState         = "invalid_state"
	ReasonChartIncomplete      = "chart_incomplete"
	ReasonDuplicate            = "duplicate"
	ReasonLockTimeout          = "db_lock_timeout"
	ReasonSerializationFailure = "serialization_failure"
	ReasonDeadlineExceeded     = "deadline_exceeded"
	ReasonUnknown              = "unknown"
)

const (
	OperationPostJournal  = "post_journal"
	OperationPostInvoice  = "post_invoice"
	OperationApplyPayment = "apply_payment"
)

// LedgerMetrics captures posting health signals. A nil *LedgerMetrics is a
// valid no-op so services and tests can run without a registry.
type LedgerMetrics struct {
	journalsPosted     *prometheus.CounterVec
	postingFailures    *prometheus.CounterVec
	invoiceTransitions *prometheus.CounterVec
	paymentsApplied    *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// New registers the ledger collectors on registerer (the default registerer when nil).
func New(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LedgerMetrics{
		journalsPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "journal_entries_posted_total",
			Help:      "Journal entries recorded by the journal engine.",
		}, []string{"status"}),
		postingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "posting_failures_total",
			Help:      "Ledger mutations that were rejected or rolled back.",
		}, []string{"operation", "reason"}),
		invoiceTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "invoice_transitions_total",
			Help:      "Invoice lifecycle transitions by invoice type and target status.",
		}, []string{"invoice_type", "status"}),
		paymentsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "payments_applied_total",
			Help:      "Payments applied against invoices.",
		}, []string{"direction"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registerer.MustRegister(
		m.journalsPosted,
		m.postingFailures,
		m.invoiceTransitions,
		m.paymentsApplied,
		m.requestDuration,
	)
	return m
}

func (m *LedgerMetrics) JournalPosted(status string) {
	if m == nil {
		return
	}
	m.journalsPosted.WithLabelValues(status).Inc()
}

// PostingFailed counts a failed operation, labelled by ClassifyReason(err).
func (m *LedgerMetrics) PostingFailed(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.postingFailures.WithLabelValues(operation, ClassifyReason(err)).Inc()
}

func (m *LedgerMetrics) InvoiceTransition(invoiceType, status string) {
	if m == nil {
		return
	}
	m.invoiceTransitions.WithLabelValues(invoiceType, status).Inc()
}

func (m *LedgerMetrics) PaymentApplied(direction string) {
	if m == nil {
		return
	}
	m.paymentsApplied.WithLabelValues(direction).Inc()
}

// GinMiddleware observes request latency labelled by the matched route template.
func (m *LedgerMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// ClassifyReason maps an error to a bounded metrics label.
func ClassifyReason(err error) string {
	if err == nil {
		return ReasonUnknown
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonDeadlineExceeded
	case errors.Is(err, apperrors.ErrUnbalancedEntry):
		return ReasonUnbalanced
	case errors.Is(err, apperrors.ErrChartOfAccountsIncomplete):
		return ReasonChartIncomplete
	case errors.Is(err, apperrors.ErrInvalidState):
		return ReasonInvalidState
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return ReasonDuplicate
	case errors.Is(err, apperrors.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return ReasonValidation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03":
			return ReasonLockTimeout
		case "40001", "40P01":
			return ReasonSerializationFailure
		case "23505":
			return ReasonDuplicate
		}
	}
	return ReasonUnknown
}
