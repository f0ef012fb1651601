package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
)

// contextUser is the gin context key the resolved user ID is stored under.
const contextUser = "pocketledger:user"

// Middleware resolves the calling user from the Authorization header.
//
// A "Bearer" token is verified as a session token, HTTP Basic credentials
// are checked against the stored password hash. Requests without a valid
// identity are rejected with 401 and do not reach the handler.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := identify(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(contextUser, userID)
		c.Next()
	}
}

func identify(c *gin.Context, secret string) (uuid.UUID, bool) {
	header := c.GetHeader("Authorization")

	if strings.HasPrefix(header, "Bearer ") {
		userID, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			return uuid.Nil, false
		}

		// The token outlives nothing: verify the user still exists
		var user models.User
		err = models.DB.First(&user, "id = ?", userID).Error
		if err != nil {
			return uuid.Nil, false
		}

		return user.ID, true
	}

	if email, password, ok := c.Request.BasicAuth(); ok {
		var user models.User
		err := models.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
		if err != nil {
			return uuid.Nil, false
		}

		if !CheckPassword(user.PasswordHash, password) {
			return uuid.Nil, false
		}

		return user.ID, true
	}

	return uuid.Nil, false
}

// UserID returns the identity that Middleware resolved for this request.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(contextUser).(uuid.UUID)
}
