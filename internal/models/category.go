package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType determines whether transactions in a category are
// income or expenses.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a named bucket that a user assigns transactions to.
type Category struct {
	DefaultModel
	UserID uuid.UUID    `json:"userId" gorm:"uniqueIndex:category_user_name"`
	Name   string       `json:"name" gorm:"uniqueIndex:category_user_name" example:"Groceries"`
	Type   CategoryType `json:"type" example:"expense"`
}

// BeforeSave validates the category.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if c.Type != CategoryTypeIncome && c.Type != CategoryTypeExpense {
		return ErrCategoryTypeInvalid
	}

	return nil
}

// DeleteCategory removes a category if no transaction references it.
//
// The reference count and the delete run in a single database transaction
// so that a transaction inserted concurrently cannot be orphaned.
func DeleteCategory(db *gorm.DB, category Category) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Transaction{}).Where("category_id = ?", category.ID).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return CategoryInUseError{Count: count}
		}

		return tx.Delete(&category).Error
	})
}
