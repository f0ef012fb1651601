package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterUserRoutes registers the routes for the calling user's profile
// with the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPatch)
	r.GET("", GetUser)
	r.PATCH("", UpdateUser)

	r.OPTIONS("/password", httputil.OptionsPut)
	r.PUT("/password", UpdatePassword)
}

// UserEditable represents all user configurable parameters of a profile.
type UserEditable struct {
	Username string `json:"username" example:"jane"`
	Email    string `json:"email" example:"jane@example.com"`
	Currency string `json:"currency" example:"EUR"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GetUser returns the calling user's profile.
func GetUser(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser updates the calling user's profile. Only values to be
// updated need to be specified.
func UpdateUser(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := UserEditable{
		Username: user.Username,
		Email:    user.Email,
		Currency: user.Currency,
	}

	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	user.Username = editable.Username
	user.Email = editable.Email
	user.Currency = editable.Currency

	err = models.DB.Save(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePassword changes the calling user's password after verifying the
// current one.
func UpdatePassword(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var request PasswordChangeRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, request.CurrentPassword) {
		c.JSON(http.StatusBadRequest, httpError{Error: "the current password is not correct"})
		return
	}

	if len(request.NewPassword) < 8 {
		c.JSON(http.StatusBadRequest, httpError{Error: "the new password must be at least 8 characters"})
		return
	}

	hash, err := auth.HashPassword(request.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	err = models.DB.Model(&user).Update("password_hash", hash).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
