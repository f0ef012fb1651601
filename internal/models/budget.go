package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a per-category monthly spending ceiling.
// A user can have at most one budget per category and month.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID       `json:"userId" gorm:"uniqueIndex:budget_user_category_month"`
	CategoryID uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_user_category_month"`
	Category   Category        `json:"-"`
	Month      types.Month     `json:"month" gorm:"uniqueIndex:budget_user_category_month" example:"2025-01"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400"`
}

// BeforeSave validates the budget.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	if b.Amount.IsNegative() {
		return ErrBudgetAmountNegative
	}

	if b.Month.IsZero() {
		b.Month = types.MonthOf(types.Today().Time())
	}

	var category Category
	err := tx.First(&category, "id = ? AND user_id = ?", b.CategoryID, b.UserID).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryInvalid
		}
		return err
	}

	return nil
}
