package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrUsernameTaken = errors.New("this username is already in use")
	ErrEmailTaken    = errors.New("this email address is already in use")

	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
	ErrCategoryTypeInvalid   = errors.New(`the category type must be "income" or "expense"`)
	ErrCategoryNameNotUnique = errors.New("the category name is already in use")
	ErrCategoryInvalid       = errors.New("invalid category")

	ErrAmountNotPositive = errors.New("the amount must be positive")

	ErrBudgetAmountNegative = errors.New("the budget amount must not be negative")
	ErrBudgetNotUnique      = errors.New("a budget for this category and month already exists")
)

// CategoryInUseError is returned when a category cannot be deleted because
// transactions still reference it. Count reports how many.
type CategoryInUseError struct {
	Count int64
}

func (e CategoryInUseError) Error() string {
	return fmt.Sprintf("cannot delete a category that is used in transactions, %d transactions reference it", e.Count)
}
