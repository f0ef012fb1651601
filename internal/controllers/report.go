package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterReportRoutes registers the routes for reports with the
// RouterGroup that is passed. All reports are pure reads and safe to
// retry.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetReport)
}

var errReportTypeInvalid = errors.New("invalid report type. Available types: summary, category, trend, budget")

// ReportQuery selects the report and its parameters.
type ReportQuery struct {
	Type   string `form:"type"`   // Report to run: summary, category, trend or budget
	From   string `form:"from"`   // Start date, defaults to the first day of the current month
	Until  string `form:"until"`  // End date (inclusive), defaults to the last day of the current month
	Bucket string `form:"bucket"` // Bucket size for the trend report: daily, weekly or monthly
	Month  string `form:"month"`  // Month for the budget report, defaults to the current month
}

// Period echoes the date range a report was computed over.
type Period struct {
	From  types.Date `json:"from" example:"2025-01-01"`
	Until types.Date `json:"until" example:"2025-01-31"`
}

type SummaryReportResponse struct {
	models.Summary
	Period Period `json:"period"`
}

type CategoryReportResponse struct {
	Expenses []models.CategoryTotal `json:"expenses"`
	Income   []models.CategoryTotal `json:"income"`
	Period   Period                 `json:"period"`
}

type TrendReportResponse struct {
	Income  []models.TrendPoint `json:"income"`
	Expense []models.TrendPoint `json:"expense"`
	Bucket  models.TrendBucket  `json:"bucket" example:"monthly"`
	Period  Period              `json:"period"`
}

type BudgetReportResponse struct {
	Data  []models.BudgetActual `json:"data"`
	Month types.Month           `json:"month" example:"2025-01"`
}

// GetReport runs the report selected with the "type" query parameter.
func GetReport(c *gin.Context) {
	var query ReportQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	currentMonth := types.MonthOf(time.Now())

	from := currentMonth.FirstDay()
	if query.From != "" {
		parsed, err := types.ParseDate(query.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidDate.Error()})
			return
		}
		from = parsed
	}

	until := currentMonth.LastDay()
	if query.Until != "" {
		parsed, err := types.ParseDate(query.Until)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidDate.Error()})
			return
		}
		until = parsed
	}

	period := Period{From: from, Until: until}
	userID := auth.UserID(c)

	switch query.Type {
	case "summary":
		summary, err := models.Summarize(models.DB, userID, models.TransactionFilter{From: from, Until: until})
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, SummaryReportResponse{Summary: summary, Period: period})

	case "category":
		expenses, income, err := models.CategoryBreakdown(models.DB, userID, from, until)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, CategoryReportResponse{Expenses: expenses, Income: income, Period: period})

	case "trend":
		bucket := models.TrendMonthly
		if query.Bucket != "" {
			if !slices.Contains([]models.TrendBucket{models.TrendDaily, models.TrendWeekly, models.TrendMonthly}, models.TrendBucket(query.Bucket)) {
				c.JSON(http.StatusBadRequest, httpError{Error: "invalid bucket. Available buckets: daily, weekly, monthly"})
				return
			}
			bucket = models.TrendBucket(query.Bucket)
		}

		income, expense, err := models.Trend(models.DB, userID, from, until, bucket)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, TrendReportResponse{Income: income, Expense: expense, Bucket: bucket, Period: period})

	case "budget":
		month := currentMonth
		if query.Month != "" {
			parsed, err := types.ParseMonth(query.Month)
			if err != nil {
				c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidMonth.Error()})
				return
			}
			month = parsed
		}

		data, err := models.BudgetVsActual(models.DB, userID, month)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, BudgetReportResponse{Data: data, Month: month})

	default:
		c.JSON(http.StatusBadRequest, httpError{Error: errReportTypeInvalid.Error()})
	}
}
