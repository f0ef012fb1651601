package controllers

import (
	"errors"
	"net/http"

	"github.com/pocketledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no category matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	// Ownership failures look exactly like missing resources so that the
	// existence of other users' data is never leaked
	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, models.ErrCategoryInvalid) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrCategoryNameNotUnique) ||
		errors.Is(err, models.ErrBudgetNotUnique) ||
		errors.Is(err, models.ErrUsernameTaken) ||
		errors.Is(err, models.ErrEmailTaken) {
		return http.StatusConflict
	}

	var inUse models.CategoryInUseError
	if errors.As(err, &inUse) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
