package controllers_test

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegister() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", controllers.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.AuthResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(response.Success)
	suite.Assert().NotEmpty(response.Token)

	// Registration creates the default category set
	var user models.User
	suite.Require().Nil(models.DB.First(&user, "email = ?", "jane@example.com").Error)

	var count int64
	models.DB.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&count)
	suite.Assert().Equal(int64(15), count)
}

func (suite *TestSuiteStandard) TestRegisterValidation() {
	tests := []struct {
		name    string
		request controllers.RegisterRequest
		field   string
		message string
	}{
		{"no username", controllers.RegisterRequest{Email: "jane@example.com", Password: "correct horse battery staple"}, "username", "Username is required"},
		{"short username", controllers.RegisterRequest{Username: "jo", Email: "jane@example.com", Password: "correct horse battery staple"}, "username", "Username must be at least 3 characters"},
		{"no email", controllers.RegisterRequest{Username: "jane", Password: "correct horse battery staple"}, "email", "Email is required"},
		{"invalid email", controllers.RegisterRequest{Username: "jane", Email: "not-an-email", Password: "correct horse battery staple"}, "email", "Please enter a valid email address"},
		{"no password", controllers.RegisterRequest{Username: "jane", Email: "jane@example.com"}, "password", "Password is required"},
		{"short password", controllers.RegisterRequest{Username: "jane", Email: "jane@example.com", Password: "secret"}, "password", "Password must be at least 8 characters"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "/v1/auth/register", tt.request)
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response controllers.AuthResponse
			test.DecodeResponse(t, &recorder, &response)

			assert.False(t, response.Success)
			assert.Equal(t, tt.message, response.Errors[tt.field])
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterDuplicate() {
	suite.signup()

	var user models.User
	suite.Require().Nil(models.DB.First(&user).Error)

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", controllers.RegisterRequest{
		Username: user.Username,
		Email:    "fresh@example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.AuthResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().False(response.Success)
	suite.Assert().Equal("Username already exists", response.Errors["username"])

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/register", controllers.RegisterRequest{
		Username: "somebody-else",
		Email:    user.Email,
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().False(response.Success)
	suite.Assert().Equal("Email already exists", response.Errors["email"])
}

func (suite *TestSuiteStandard) TestRegisterNoBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestLogin() {
	user, _ := suite.signup()

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/login", controllers.LoginRequest{
		Email:    user.Email,
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.AuthResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(response.Success)
	suite.Assert().NotEmpty(response.Token)

	// Login records the time
	suite.Require().Nil(models.DB.First(&user, "id = ?", user.ID).Error)
	suite.Assert().NotNil(user.LastLogin)
}

func (suite *TestSuiteStandard) TestLoginEmailCaseInsensitive() {
	user, _ := suite.signup()

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/login", controllers.LoginRequest{
		Email:    strings.ToUpper(user.Email),
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.AuthResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Success)
}

func (suite *TestSuiteStandard) TestLoginWrongCredentials() {
	user, _ := suite.signup()

	tests := []struct {
		name    string
		request controllers.LoginRequest
	}{
		{"wrong password", controllers.LoginRequest{Email: user.Email, Password: "not the password"}},
		{"unknown email", controllers.LoginRequest{Email: "nobody@example.com", Password: "correct horse battery staple"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "/v1/auth/login", tt.request)
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response controllers.AuthResponse
			test.DecodeResponse(t, &recorder, &response)

			assert.False(t, response.Success)
			// Both failure modes read the same so that valid emails
			// cannot be probed
			assert.Equal(t, "Invalid email or password", response.Message)
			assert.Empty(t, response.Token)
		})
	}
}

func (suite *TestSuiteStandard) TestLoginMissingFields() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/login", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/login", controllers.LoginRequest{Email: "jane@example.com"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.AuthResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().False(response.Success)
	suite.Assert().Equal("Email and password are required", response.Message)
}

func (suite *TestSuiteStandard) TestUnauthorized() {
	for _, path := range []string{"/v1/categories", "/v1/transactions", "/v1/reports?type=summary", "/v1/budgets", "/v1/user"} {
		recorder := test.Request(suite.T(), http.MethodGet, path, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	}
}

func (suite *TestSuiteStandard) TestInvalidToken() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", "", map[string]string{"Authorization": "Bearer not.a.token"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestBasicAuth() {
	user, _ := suite.signup()

	auth := base64.StdEncoding.EncodeToString([]byte(user.Email + ":correct horse battery staple"))
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", "", map[string]string{"Authorization": "Basic " + auth})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	auth = base64.StdEncoding.EncodeToString([]byte(user.Email + ":wrong password"))
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/categories", "", map[string]string{"Authorization": "Basic " + auth})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
