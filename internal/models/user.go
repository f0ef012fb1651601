package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered user. Users own all categories,
// transactions and budgets they create. Users are never hard-deleted.
type User struct {
	DefaultModel
	Username     string     `json:"username" gorm:"uniqueIndex" example:"jane"`
	Email        string     `json:"email" gorm:"uniqueIndex" example:"jane@example.com"`
	PasswordHash string     `json:"-"`
	Currency     string     `json:"currency" example:"USD" default:"USD"` // Display currency for amounts
	LastLogin    *time.Time `json:"lastLogin"`
}

// BeforeSave normalizes the username and email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Currency == "" {
		u.Currency = "USD"
	}

	return nil
}

// defaultCategories are created for every new user at registration.
var defaultCategories = []Category{
	{Name: "Salary", Type: CategoryTypeIncome},
	{Name: "Freelance", Type: CategoryTypeIncome},
	{Name: "Investments", Type: CategoryTypeIncome},
	{Name: "Gifts", Type: CategoryTypeIncome},
	{Name: "Other Income", Type: CategoryTypeIncome},
	{Name: "Food", Type: CategoryTypeExpense},
	{Name: "Housing", Type: CategoryTypeExpense},
	{Name: "Transportation", Type: CategoryTypeExpense},
	{Name: "Entertainment", Type: CategoryTypeExpense},
	{Name: "Shopping", Type: CategoryTypeExpense},
	{Name: "Utilities", Type: CategoryTypeExpense},
	{Name: "Healthcare", Type: CategoryTypeExpense},
	{Name: "Education", Type: CategoryTypeExpense},
	{Name: "Travel", Type: CategoryTypeExpense},
	{Name: "Other Expenses", Type: CategoryTypeExpense},
}

// CreateDefaultCategories generates the default category set for a new user.
func CreateDefaultCategories(db *gorm.DB, userID uuid.UUID) error {
	for _, category := range defaultCategories {
		category.UserID = userID

		err := db.Create(&category).Error
		if err != nil {
			return err
		}
	}

	return nil
}
