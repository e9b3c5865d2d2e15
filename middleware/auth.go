package middleware

import (
	"errors"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the authenticated models.User.
const UserKey = "user"

// AuthMiddleware verifies the bearer token and stores the principal in the
// context. Only identities with a verified email may use the API.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogDebug("AuthMiddleware called")

		tokenString, ok := utils.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.LogError("Missing or malformed Authorization header")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := utils.ParseToken(tokenString, secret)
		if err == nil && user.ID == store.AllOwners {
			err = errors.New("reserved subject")
		}
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		if !user.EmailVerified {
			utils.LogWarn("Unverified user attempted access: %s", user.ID)
			utils.Forbidden(c, "Email address is not verified")
			c.Abort()
			return
		}

		// Set user in context
		c.Set(UserKey, user)
		utils.LogDebug("User %s authenticated successfully", user.ID)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.LogError("User not found in context")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if !user.IsAdmin {
			utils.LogError("Non-admin user attempted admin access: %s", user.ID)
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}

		utils.LogDebug("Admin access granted for user %s", user.ID)
		c.Next()
	}
}

// CurrentUser returns the principal set by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
