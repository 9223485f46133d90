package dto

import (
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name            string             `json:"name" binding:"required"`
	Code            string             `json:"code" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	IsGroup         bool               `json:"isGroup"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Name            string             `json:"name"`
	Code            string             `json:"code"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID"` // Note: Empty string if null in DB
	IsGroup         bool               `json:"isGroup"`
	Balance         decimal.Decimal    `json:"balance"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		Code:            acc.Code,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		IsGroup:         acc.IsGroup,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountNodeResponse is one node of the chart of accounts tree.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// ChartOfAccountsResponse wraps the forest of root accounts.
type ChartOfAccountsResponse struct {
	Roots []AccountNodeResponse `json:"roots"`
}

// ToChartOfAccountsResponse converts the domain tree recursively.
func ToChartOfAccountsResponse(roots []*domain.AccountNode) ChartOfAccountsResponse {
	return ChartOfAccountsResponse{Roots: toNodeResponses(roots)}
}

func toNodeResponses(nodes []*domain.AccountNode) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		res[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&n.Account),
			Children:        toNodeResponses(n.Children),
		}
	}
	return res
}
