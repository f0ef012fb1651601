package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	ez_uuid "github.com/pocketledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	{
		r.OPTIONS("/recent", httputil.OptionsGet)
		r.GET("/recent", GetRecentTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// TransactionEditable represents all user configurable parameters of a
// transaction.
type TransactionEditable struct {
	CategoryID  ez_uuid.UUID    `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Amount      decimal.Decimal `json:"amount" example:"14.50"`
	Date        types.Date      `json:"date" example:"2025-01-15"` // Defaults to today when unset
	Description string          `json:"description" example:"Weekly groceries"`
}

// TransactionQueryFilter contains the filters for the transaction list.
// All filters settable at once, combined conjunctively.
type TransactionQueryFilter struct {
	FromDate  string       `form:"fromDate"`  // Transactions at and after this date
	UntilDate string       `form:"untilDate"` // Transactions before and at this date
	Type      string       `form:"type"`      // Filter by category type
	Category  ez_uuid.UUID `form:"category"`  // Filter by category ID
	Offset    uint         `form:"offset"`    // The offset of the first transaction returned. Defaults to 0.
	Limit     int          `form:"limit"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) parse() (models.TransactionFilter, error) {
	filter := models.TransactionFilter{
		CategoryID: f.Category.UUID,
	}

	if f.FromDate != "" {
		from, err := types.ParseDate(f.FromDate)
		if err != nil {
			return models.TransactionFilter{}, httputil.ErrInvalidDate
		}
		filter.From = from
	}

	if f.UntilDate != "" {
		until, err := types.ParseDate(f.UntilDate)
		if err != nil {
			return models.TransactionFilter{}, httputil.ErrInvalidDate
		}
		filter.Until = until
	}

	if f.Type != "" {
		if !slices.Contains([]models.CategoryType{models.CategoryTypeIncome, models.CategoryTypeExpense}, models.CategoryType(f.Type)) {
			return models.TransactionFilter{}, models.ErrCategoryTypeInvalid
		}
		filter.Type = models.CategoryType(f.Type)
	}

	return filter, nil
}

// TransactionListResponse contains the requested page of transactions
// and the summary over the whole filtered set.
type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`
	Pagination Pagination           `json:"pagination"`
	Summary    models.Summary       `json:"summary"` // Aggregate over all matches, not only this page
}

func OptionsTransactionDetail(c *gin.Context) {
	_, err := getOwnTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetTransactions returns a page of the calling user's transactions,
// newest first, together with the income/expense summary over the whole
// filtered set.
func GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	filter, err := query.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	userID := auth.UserID(c)
	transactions, total, err := models.Transactions(models.DB, userID, filter, query.Offset, limit)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	summary, err := models.Summarize(models.DB, userID, filter)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: Pagination{
			Count:  len(transactions),
			Total:  total,
			Offset: query.Offset,
			Limit:  limit,
		},
		Summary: summary,
	})
}

// GetRecentTransactions returns the most recent transactions of the
// calling user.
func GetRecentTransactions(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.Limit <= 0 {
		query.Limit = 5
	}

	transactions, _, err := models.Transactions(models.DB, auth.UserID(c), models.TransactionFilter{}, 0, query.Limit)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransaction returns a specific transaction.
func GetTransaction(c *gin.Context) {
	transaction, err := getOwnTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// CreateTransaction creates a new transaction for the calling user.
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction := models.Transaction{
		UserID:      auth.UserID(c),
		CategoryID:  editable.CategoryID.UUID,
		Amount:      editable.Amount,
		Date:        editable.Date,
		Description: editable.Description,
	}

	err = models.DB.Create(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction updates an existing transaction. Only values to be
// updated need to be specified, everything else keeps its current value.
func UpdateTransaction(c *gin.Context) {
	transaction, err := getOwnTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := TransactionEditable{
		CategoryID:  ez_uuid.UUID{UUID: transaction.CategoryID},
		Amount:      transaction.Amount,
		Date:        transaction.Date,
		Description: transaction.Description,
	}

	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction.CategoryID = editable.CategoryID.UUID
	transaction.Amount = editable.Amount
	transaction.Date = editable.Date
	transaction.Description = editable.Description

	err = models.DB.Save(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction deletes a transaction.
func DeleteTransaction(c *gin.Context) {
	transaction, err := getOwnTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// getOwnTransaction loads the transaction referenced in the URI, scoped
// to the calling user. Transactions of other users are reported as
// missing.
func getOwnTransaction(c *gin.Context) (models.Transaction, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Transaction{}, err
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}
