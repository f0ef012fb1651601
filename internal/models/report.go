package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionFilter restricts a query over a user's transactions.
// All set fields must match (conjunctive filtering).
type TransactionFilter struct {
	From       types.Date
	Until      types.Date
	Type       CategoryType
	CategoryID uuid.UUID
}

// query composes the filter into a gorm query scoped to the user,
// joined to the owning categories.
func (f TransactionFilter) query(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	q := db.Model(&Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID)

	if !f.From.IsZero() {
		q = q.Where("transactions.date >= date(?)", f.From.Time())
	}

	if !f.Until.IsZero() {
		q = q.Where("transactions.date < date(?)", f.Until.AddDate(0, 0, 1).Time())
	}

	if f.Type != "" {
		q = q.Where("categories.type = ?", f.Type)
	}

	if f.CategoryID != uuid.Nil {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}

	return q
}

// Transactions returns the page of matching transactions together with the
// total number of matches. Ordering is by date, newest first, with the
// creation time as tie-break so that the newest insert wins for same-day
// entries.
func Transactions(db *gorm.DB, userID uuid.UUID, filter TransactionFilter, offset uint, limit int) ([]Transaction, int64, error) {
	q := filter.query(db, userID).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	var transactions []Transaction
	err := q.Offset(int(offset)).Limit(limit).Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

// Summary is the income/expense aggregate over a set of transactions.
type Summary struct {
	Income  decimal.Decimal `json:"income" example:"1000"`
	Expense decimal.Decimal `json:"expense" example:"250.50"`
	Balance decimal.Decimal `json:"balance" example:"749.50"`
}

// typeAmount is a projection of a transaction to the data the
// aggregations need.
type typeAmount struct {
	CategoryID uuid.UUID
	Date       types.Date
	Type       CategoryType
	Amount     decimal.Decimal
}

func amounts(db *gorm.DB, userID uuid.UUID, filter TransactionFilter) ([]typeAmount, error) {
	var rows []typeAmount
	err := filter.query(db, userID).
		Select("transactions.category_id AS category_id, transactions.date AS date, categories.type AS type, transactions.amount AS amount").
		Order("datetime(transactions.date) ASC").
		Find(&rows).Error

	return rows, err
}

// Summarize computes the Summary over all transactions matching the filter.
// Amounts are summed with decimal arithmetic, the database never adds
// floating point values.
func Summarize(db *gorm.DB, userID uuid.UUID, filter TransactionFilter) (Summary, error) {
	rows, err := amounts(db, userID, filter)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{}
	for _, row := range rows {
		if row.Type == CategoryTypeIncome {
			summary.Income = summary.Income.Add(row.Amount)
		} else {
			summary.Expense = summary.Expense.Add(row.Amount)
		}
	}

	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary, nil
}

// CategoryTotal is a category's share of its type within a date range.
type CategoryTotal struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name" example:"Groceries"`
	Total      decimal.Decimal `json:"total" example:"120.50"`
	Percentage decimal.Decimal `json:"percentage" example:"48.2"`
}

// CategoryBreakdown returns the per-category totals and percentages for
// expenses and income within the date range. Categories without
// transactions are included with a zero total. Percentages are 0 when the
// total for the type is 0.
func CategoryBreakdown(db *gorm.DB, userID uuid.UUID, from, until types.Date) (expenses, income []CategoryTotal, err error) {
	var categories []Category
	err = db.Where(&Category{UserID: userID}).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, nil, err
	}

	rows, err := amounts(db, userID, TransactionFilter{From: from, Until: until})
	if err != nil {
		return nil, nil, err
	}

	totals := make(map[uuid.UUID]decimal.Decimal, len(categories))
	for _, row := range rows {
		totals[row.CategoryID] = totals[row.CategoryID].Add(row.Amount)
	}

	var expenseTotal, incomeTotal decimal.Decimal
	expenses = make([]CategoryTotal, 0)
	income = make([]CategoryTotal, 0)

	for _, category := range categories {
		entry := CategoryTotal{
			ID:    category.ID,
			Name:  category.Name,
			Total: totals[category.ID],
		}

		if category.Type == CategoryTypeExpense {
			expenseTotal = expenseTotal.Add(entry.Total)
			expenses = append(expenses, entry)
		} else {
			incomeTotal = incomeTotal.Add(entry.Total)
			income = append(income, entry)
		}
	}

	percentagesOf(expenses, expenseTotal)
	percentagesOf(income, incomeTotal)

	return expenses, income, nil
}

var hundred = decimal.NewFromInt(100)

// percentagesOf sets the percentage fields and orders the entries by
// total, descending. The slices are already ordered by name, which keeps
// the ordering stable for equal totals.
func percentagesOf(entries []CategoryTotal, typeTotal decimal.Decimal) {
	for i := range entries {
		if typeTotal.IsPositive() {
			entries[i].Percentage = entries[i].Total.Div(typeTotal).Mul(hundred)
		}
	}

	slices.SortStableFunc(entries, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})
}

// TrendBucket is a calendar-aligned grouping used to aggregate
// transactions over time.
type TrendBucket string

const (
	TrendDaily   TrendBucket = "daily"
	TrendWeekly  TrendBucket = "weekly"
	TrendMonthly TrendBucket = "monthly"
)

// TrendPoint is the total for one calendar bucket.
type TrendPoint struct {
	Period string          `json:"period" example:"2025-01"`
	Total  decimal.Decimal `json:"total" example:"512.23"`
}

// periodKey returns the bucket label a date falls into.
// Weekly buckets use the ISO week ("2025-W03").
func periodKey(d types.Date, bucket TrendBucket) string {
	switch bucket {
	case TrendDaily:
		return d.String()
	case TrendWeekly:
		year, week := d.Time().ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return types.MonthOf(d.Time()).String()
	}
}

// Trend buckets the income and expense totals within the date range into
// calendar-aligned periods. Buckets are ordered by the earliest
// transaction date they contain.
func Trend(db *gorm.DB, userID uuid.UUID, from, until types.Date, bucket TrendBucket) (income, expense []TrendPoint, err error) {
	rows, err := amounts(db, userID, TransactionFilter{From: from, Until: until})
	if err != nil {
		return nil, nil, err
	}

	income = make([]TrendPoint, 0)
	expense = make([]TrendPoint, 0)

	// The rows are ordered by date, so appending buckets in first-seen
	// order yields the required ordering.
	indexes := map[CategoryType]map[string]int{
		CategoryTypeIncome:  {},
		CategoryTypeExpense: {},
	}

	for _, row := range rows {
		points := &expense
		if row.Type == CategoryTypeIncome {
			points = &income
		}

		key := periodKey(row.Date, bucket)
		i, ok := indexes[row.Type][key]
		if !ok {
			i = len(*points)
			indexes[row.Type][key] = i
			*points = append(*points, TrendPoint{Period: key})
		}

		(*points)[i].Total = (*points)[i].Total.Add(row.Amount)
	}

	return income, expense, nil
}

// BudgetActual compares a category's budget ceiling with the actual
// spending in a month.
type BudgetActual struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	Name         string          `json:"name" example:"Groceries"`
	BudgetAmount decimal.Decimal `json:"budgetAmount" example:"400"`
	ActualAmount decimal.Decimal `json:"actualAmount" example:"250.50"`
	Remaining    decimal.Decimal `json:"remaining" example:"149.50"`
	Percentage   decimal.Decimal `json:"percentage" example:"62.625"`
}

// BudgetVsActual returns the budget-vs-actual comparison for all expense
// categories of the user in the given month. Categories without a budget
// report a remaining value and percentage of 0.
func BudgetVsActual(db *gorm.DB, userID uuid.UUID, month types.Month) ([]BudgetActual, error) {
	var categories []Category
	err := db.Where(&Category{UserID: userID, Type: CategoryTypeExpense}).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	var budgets []Budget
	err = db.Where("user_id = ? AND month = ?", userID, month).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	ceilings := make(map[uuid.UUID]decimal.Decimal, len(budgets))
	for _, budget := range budgets {
		ceilings[budget.CategoryID] = budget.Amount
	}

	rows, err := amounts(db, userID, TransactionFilter{
		From:  month.FirstDay(),
		Until: month.LastDay(),
		Type:  CategoryTypeExpense,
	})
	if err != nil {
		return nil, err
	}

	actuals := make(map[uuid.UUID]decimal.Decimal, len(categories))
	for _, row := range rows {
		actuals[row.CategoryID] = actuals[row.CategoryID].Add(row.Amount)
	}

	data := make([]BudgetActual, 0, len(categories))
	for _, category := range categories {
		entry := BudgetActual{
			CategoryID:   category.ID,
			Name:         category.Name,
			BudgetAmount: ceilings[category.ID],
			ActualAmount: actuals[category.ID],
		}

		if entry.BudgetAmount.IsPositive() {
			entry.Remaining = entry.BudgetAmount.Sub(entry.ActualAmount)
			entry.Percentage = entry.ActualAmount.Div(entry.BudgetAmount).Mul(hundred)
		}

		data = append(data, entry)
	}

	return data, nil
}
