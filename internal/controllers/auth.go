package controllers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterAuthRoutes registers the unauthenticated routes for
// registration and login.
func RegisterAuthRoutes(r *gin.RouterGroup, tokenSecret string) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", func(c *gin.Context) { register(c, tokenSecret) })

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", func(c *gin.Context) { login(c, tokenSecret) })
}

type RegisterRequest struct {
	Username string `json:"username" example:"jane"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// AuthResponse is returned by the registration and login endpoints.
// Validation failures are reported per field in Errors.
type AuthResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Token   string            `json:"token,omitempty"`
}

// register creates a new user together with its default categories.
func register(c *gin.Context, tokenSecret string) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	fieldErrors := validateRegistration(request)
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusOK, AuthResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  fieldErrors,
		})
		return
	}

	hash, err := auth.HashPassword(request.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	user := models.User{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: hash,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		// The uniqueness checks in validateRegistration can race with a
		// concurrent registration, the unique indexes are the backstop
		if errors.Is(err, models.ErrUsernameTaken) {
			c.JSON(http.StatusOK, AuthResponse{Success: false, Message: "Validation failed", Errors: map[string]string{"username": "Username already exists"}})
			return
		}
		if errors.Is(err, models.ErrEmailTaken) {
			c.JSON(http.StatusOK, AuthResponse{Success: false, Message: "Validation failed", Errors: map[string]string{"email": "Email already exists"}})
			return
		}

		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.CreateDefaultCategories(models.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	token, err := auth.NewToken(user.ID, tokenSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Registration successful",
		Token:   token,
	})
}

func validateRegistration(request RegisterRequest) map[string]string {
	fieldErrors := make(map[string]string)

	switch {
	case request.Username == "":
		fieldErrors["username"] = "Username is required"
	case len(request.Username) < 3:
		fieldErrors["username"] = "Username must be at least 3 characters"
	case exists(models.User{}, "username = ?", request.Username):
		fieldErrors["username"] = "Username already exists"
	}

	_, mailErr := mail.ParseAddress(request.Email)
	switch {
	case request.Email == "":
		fieldErrors["email"] = "Email is required"
	case mailErr != nil:
		fieldErrors["email"] = "Please enter a valid email address"
	case exists(models.User{}, "email = ?", strings.ToLower(strings.TrimSpace(request.Email))):
		fieldErrors["email"] = "Email already exists"
	}

	switch {
	case request.Password == "":
		fieldErrors["password"] = "Password is required"
	case len(request.Password) < 8:
		fieldErrors["password"] = "Password must be at least 8 characters"
	}

	return fieldErrors
}

func exists(model models.User, query string, args ...interface{}) bool {
	err := models.DB.Where(query, args...).First(&model).Error
	return err == nil
}

// login verifies the credentials and issues a session token.
func login(c *gin.Context, tokenSecret string) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if request.Email == "" || request.Password == "" {
		c.JSON(http.StatusOK, AuthResponse{Success: false, Message: "Email and password are required"})
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(request.Email))).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Unknown email and wrong password are indistinguishable for callers
	if err != nil || !auth.CheckPassword(user.PasswordHash, request.Password) {
		c.JSON(http.StatusOK, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	now := time.Now().In(time.UTC)
	err = models.DB.Model(&user).Update("last_login", &now).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	token, err := auth.NewToken(user.ID, tokenSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	})
}
