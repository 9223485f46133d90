package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/middleware"
)

// respondError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a 500 with failMsg.
func respondError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	var unbalanced *apperrors.UnbalancedEntryError
	var incomplete *apperrors.ChartOfAccountsIncompleteError
	var cyclic *apperrors.CyclicChartOfAccountsError

	switch {
	case errors.As(err, &unbalanced):
		logger.Warn("Unbalanced journal entry rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       err.Error(),
			"totalDebit":  unbalanced.TotalDebit,
			"totalCredit": unbalanced.TotalCredit,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &incomplete):
		logger.Warn("Chart of accounts incomplete", slog.Any("missing", incomplete.Missing))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "missing": incomplete.Missing})
	case errors.As(err, &cyclic):
		logger.Error("Chart of accounts contains a cycle", slog.Any("account_ids", cyclic.AccountIDs))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "accountIDs": cyclic.AccountIDs})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

// requireUser returns the authenticated user id or writes a 401.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
