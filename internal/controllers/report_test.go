package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	ez_uuid "github.com/pocketledger/backend/internal/uuid"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
)

// reportData seeds a user with one salary payment and two expenses in
// January 2025.
func (suite *TestSuiteStandard) reportData() (models.User, map[string]string) {
	user, headers := suite.signup()

	var salary, food models.Category
	suite.Require().Nil(models.DB.First(&salary, "user_id = ? AND name = ?", user.ID, "Salary").Error)
	suite.Require().Nil(models.DB.First(&food, "user_id = ? AND name = ?", user.ID, "Food").Error)

	suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: salary.ID, Date: types.NewDate(2025, 1, 1), Amount: decimal.RequireFromString("1000.00")})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: food.ID, Date: types.NewDate(2025, 1, 10), Amount: decimal.RequireFromString("150.50")})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: food.ID, Date: types.NewDate(2025, 1, 20), Amount: decimal.RequireFromString("49.50")})

	return user, headers
}

func (suite *TestSuiteStandard) TestSummaryReport() {
	_, headers := suite.reportData()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports?type=summary&from=2025-01-01&until=2025-01-31", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.SummaryReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(decimal.RequireFromString("1000.00").Equal(response.Income), "Income is %s", response.Income)
	suite.Assert().True(decimal.RequireFromString("200.00").Equal(response.Expense), "Expense is %s", response.Expense)
	suite.Assert().True(decimal.RequireFromString("800.00").Equal(response.Balance), "Balance is %s", response.Balance)
	suite.Assert().True(response.Period.From.Equal(types.NewDate(2025, 1, 1)))
	suite.Assert().True(response.Period.Until.Equal(types.NewDate(2025, 1, 31)))
}

func (suite *TestSuiteStandard) TestSummaryReportDefaultsToCurrentMonth() {
	user, headers := suite.signup()
	category := suite.expenseCategory(user)

	// One transaction today, one far in the past
	suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: category.ID, Amount: decimal.NewFromInt(30)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: category.ID, Date: types.NewDate(2000, 1, 1), Amount: decimal.NewFromInt(999)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports?type=summary", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.SummaryReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(decimal.NewFromInt(30).Equal(response.Expense), "Expense is %s", response.Expense)
}

func (suite *TestSuiteStandard) TestCategoryReport() {
	_, headers := suite.reportData()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports?type=category&from=2025-01-01&until=2025-01-31", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.CategoryReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// All ten default expense categories, the one with spending first
	suite.Require().Len(response.Expenses, 10)
	suite.Assert().Equal("Food", response.Expenses[0].Name)
	suite.Assert().True(decimal.RequireFromString("200.00").Equal(response.Expenses[0].Total))
	suite.Assert().True(decimal.NewFromInt(100).Equal(response.Expenses[0].Percentage))

	suite.Require().Len(response.Income, 5)
	suite.Assert().Equal("Salary", response.Income[0].Name)
}

func (suite *TestSuiteStandard) TestTrendReport() {
	_, headers := suite.reportData()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports?type=trend&from=2025-01-01&until=2025-01-31&bucket=daily", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.TrendReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(models.TrendDaily, response.Bucket)
	suite.Require().Len(response.Income, 1)
	suite.Assert().Equal("2025-01-01", response.Income[0].Period)
	suite.Require().Len(response.Expense, 2)
	suite.Assert().Equal("2025-01-10", response.Expense[0].Period)
}

func (suite *TestSuiteStandard) TestTrendReportDefaultsToMonthly() {
	_, headers := suite.reportData()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports?type=trend&from=2025-01-01&until=2025-01-31", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.TrendReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(models.TrendMonthly, response.Bucket)
	suite.Require().Len(response.Expense, 1)
	suite.Assert().Equal("2025-01", response.Expense[0].Period)
}

func (suite *TestSuiteStandard) TestBudgetReport() {
	user, headers := suite.reportData()

	var food models.Category
	suite.Require().Nil(models.DB.First(&food, "user_id = ? AND name = ?", user.ID, "Food").Error)

	suite.createTestBudget(models.Budget{
		UserID:     user.ID,
		CategoryID: food.ID,
		Month:      types.NewMonth(2025, 1),
		Amount:     decimal.RequireFromString("400.00"),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/reports?type=budget&month=2025-01", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.BudgetReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(response.Month.Equal(types.NewMonth(2025, 1)))
	suite.Require().Len(response.Data, 10)

	for _, entry := range response.Data {
		if entry.Name != "Food" {
			suite.Assert().True(entry.BudgetAmount.IsZero())
			suite.Assert().True(entry.Percentage.IsZero())
			continue
		}

		suite.Assert().True(decimal.RequireFromString("400.00").Equal(entry.BudgetAmount))
		suite.Assert().True(decimal.RequireFromString("200.00").Equal(entry.ActualAmount))
		suite.Assert().True(decimal.RequireFromString("200.00").Equal(entry.Remaining))
		suite.Assert().True(decimal.NewFromInt(50).Equal(entry.Percentage), "Percentage is %s", entry.Percentage)
	}
}

func (suite *TestSuiteStandard) TestReportInvalidParameters() {
	_, headers := suite.signup()

	tests := []struct {
		name string
		url  string
	}{
		{"unknown type", "/v1/reports?type=forecast"},
		{"no type", "/v1/reports"},
		{"invalid from", "/v1/reports?type=summary&from=yesterday"},
		{"invalid until", "/v1/reports?type=summary&until=tomorrow"},
		{"invalid bucket", "/v1/reports?type=trend&bucket=hourly"},
		{"invalid month", "/v1/reports?type=budget&month=Jan"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt.url, "", headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

// TestMonthlyFlow walks a full month through the API: register, record a
// salary payment, read the summary, and verify that referenced categories
// and foreign resources answer the way the domain rules demand.
func (suite *TestSuiteStandard) TestMonthlyFlow() {
	user, headers := suite.signup()

	var salary models.Category
	suite.Require().Nil(models.DB.First(&salary, "user_id = ? AND name = ?", user.ID, "Salary").Error)

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", controllers.TransactionEditable{
		CategoryID:  ez_uuid.UUID{UUID: salary.ID},
		Amount:      decimal.RequireFromString("1000.00"),
		Date:        types.NewDate(2025, 1, 15),
		Description: "January salary",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var transaction models.Transaction
	test.DecodeResponse(suite.T(), &recorder, &transaction)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/reports?type=summary&from=2025-01-01&until=2025-01-31", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary controllers.SummaryReportResponse
	test.DecodeResponse(suite.T(), &recorder, &summary)

	suite.Assert().True(decimal.RequireFromString("1000.00").Equal(summary.Income), "Income is %s", summary.Income)
	suite.Assert().True(summary.Expense.IsZero(), "Expense is %s", summary.Expense)
	suite.Assert().True(decimal.RequireFromString("1000.00").Equal(summary.Balance), "Balance is %s", summary.Balance)

	// The salary category is referenced now and must not be deletable
	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/categories/%s", salary.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	var blocked controllers.CategoryDeletionBlocked
	test.DecodeResponse(suite.T(), &recorder, &blocked)
	suite.Assert().Equal(int64(1), blocked.Count)

	// Another user cannot see the transaction
	_, otherHeaders := suite.signup()
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", otherHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
