package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/mohaaw/shop-erp-sub000/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers the read-only report endpoints.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/verify", h.verifyLedger)
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	tb, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	report, err := h.reportingService.ProfitAndLoss(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

func (h *reportingHandler) verifyLedger(c *gin.Context) {
	result, err := h.reportingService.VerifyLedger(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to verify ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerVerificationResponse(result))
}
