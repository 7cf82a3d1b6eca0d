package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/response"
	"marketplace/internal/policy"
	"marketplace/internal/repository"
)

const (
	ctxUserID   = "user_id"
	ctxUserType = "user_type"
	ctxIsStaff  = "is_staff"
)

// Identify resolves the opaque bearer token into an identity when one is
// presented, and quietly continues otherwise. Routes that demand a login
// stack RequireAuth on top; routes like /orders/{id} need the anonymous
// passthrough so the not-found check can run before any permission answer.
func Identify(tokens *repository.TokenRepository, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.Next()
			return
		}
		key := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if key == "" {
			c.Next()
			return
		}

		t, err := tokens.GetByKey(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}
		u, err := users.GetByID(c.Request.Context(), t.UserID)
		if err != nil || !u.IsActive {
			c.Next()
			return
		}

		c.Set(ctxUserID, u.ID)
		c.Set(ctxUserType, string(u.Type))
		c.Set(ctxIsStaff, u.IsStaff)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Identify established an identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64(ctxUserID) == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor assembles the policy actor for the current request.
func Actor(c *gin.Context) policy.Actor {
	id := c.GetInt64(ctxUserID)
	return policy.Actor{
		ID:            id,
		Type:          domain.UserType(c.GetString(ctxUserType)),
		IsStaff:       c.GetBool(ctxIsStaff),
		Authenticated: id != 0,
	}
}
