package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/mohaaw/shop-erp-sub000/internal/middleware"
)

// invoiceHandler serves one invoice type; sales and purchase invoices mount
// the same handler on different paths.
type invoiceHandler struct {
	invoiceType    domain.InvoiceType
	invoiceService portssvc.InvoiceSvcFacade
}

// RegisterInvoiceRoutes mounts the lifecycle endpoints for one invoice type under path.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, path string, invoiceType domain.InvoiceType, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceType: invoiceType, invoiceService: invoiceService}

	invoices := rg.Group(path)
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/post", h.postInvoice)
		invoices.POST("/:id/cancel", h.cancelInvoice)
	}
}

func (h *invoiceHandler) logger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_type", string(h.invoiceType)))
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := h.logger(c)
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := h.logger(c).With(slog.String("invoice_id", c.Param("id")))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := h.logger(c)
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var status *domain.InvoiceStatus
	if params.Status != "" {
		s := domain.InvoiceStatus(params.Status)
		status = &s
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), status)
	if err != nil {
		respondError(c, logger, err, "Failed to list invoices")
		return
	}

	resp := dto.ListInvoicesResponse{Invoices: make([]dto.InvoiceResponse, len(invoices))}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *invoiceHandler) postInvoice(c *gin.Context) {
	logger := h.logger(c).With(slog.String("invoice_id", c.Param("id")))
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.PostInvoice(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	logger := h.logger(c).With(slog.String("invoice_id", c.Param("id")))
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to cancel invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
