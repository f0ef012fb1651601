package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	ez_uuid "github.com/pocketledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterBudgetRoutes registers the routes for budgets with the
// RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// BudgetEditable represents all user configurable parameters of a budget.
type BudgetEditable struct {
	CategoryID ez_uuid.UUID    `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Month      types.Month     `json:"month" example:"2025-01"` // Defaults to the current month when unset
	Amount     decimal.Decimal `json:"amount" example:"400"`
}

func OptionsBudgetDetail(c *gin.Context) {
	_, err := getOwnBudget(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// GetBudgets returns the calling user's budgets, optionally restricted to
// one month.
func GetBudgets(c *gin.Context) {
	var query struct {
		Month string `form:"month"` // Filter by month
	}
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	q := models.DB.Where(&models.Budget{UserID: auth.UserID(c)})

	if query.Month != "" {
		month, err := types.ParseMonth(query.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidMonth.Error()})
			return
		}
		q = q.Where("month = ?", month)
	}

	var budgets []models.Budget
	err := q.Order("month ASC").Find(&budgets).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// GetBudget returns a specific budget.
func GetBudget(c *gin.Context) {
	budget, err := getOwnBudget(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, budget)
}

// CreateBudget sets the ceiling for a category and month. An existing
// budget for the same category and month is replaced.
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	userID := auth.UserID(c)
	month := editable.Month
	if month.IsZero() {
		month = types.MonthOf(types.Today().Time())
	}

	var budget models.Budget
	err = models.DB.First(&budget,
		"user_id = ? AND category_id = ? AND month = ?",
		userID, editable.CategoryID.UUID, month,
	).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	created := err != nil
	if created {
		budget = models.Budget{
			UserID:     userID,
			CategoryID: editable.CategoryID.UUID,
			Month:      month,
		}
	}

	budget.Amount = editable.Amount
	err = models.DB.Save(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if created {
		c.JSON(http.StatusCreated, budget)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// DeleteBudget deletes a budget.
func DeleteBudget(c *gin.Context) {
	budget, err := getOwnBudget(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func getOwnBudget(c *gin.Context) (models.Budget, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Budget{}, err
	}

	var budget models.Budget
	err = models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}
