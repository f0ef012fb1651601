package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single dated monetary movement tied to one
// category. Amount is a positive magnitude, whether it counts as income
// or expense is derived from the category type and never stored.
type Transaction struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Category    Category        `json:"-"`
	Date        types.Date      `json:"date" example:"2025-01-15"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.50"`
	Description string          `json:"description" example:"Weekly groceries"`
}

// BeforeSave validates the transaction.
//
// The referenced category must belong to the same user. This is checked on
// every write path and not left to the foreign key since income/expense
// signs are derived from the category type.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.Date.IsZero() {
		t.Date = types.Today()
	}

	var category Category
	err := tx.First(&category, "id = ? AND user_id = ?", t.CategoryID, t.UserID).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryInvalid
		}
		return err
	}

	return nil
}
