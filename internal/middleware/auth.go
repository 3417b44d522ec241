package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
)

// SessionCookie is the cookie carrying the signed session token
const SessionCookie = "zeit_session"

// Claims represents the signed token claims. The session id points at a
// server-side row; a token whose session row is gone is rejected, so
// logout takes effect immediately.
type Claims struct {
	SessionID uint   `json:"session_id"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// SessionStore looks up server-side sessions. Implemented by the session
// repository.
type SessionStore interface {
	FindByID(ctx context.Context, id uint) (*models.Session, error)
}

// Auditor records authorization denials. Implemented by the audit service.
type Auditor interface {
	PermissionDenied(ctx context.Context, userID *uint, requirement, path, ip, userAgent string)
}

// Auth returns a middleware that validates the session token from the
// cookie (or a Bearer header for API clients) and checks the server-side
// session still exists.
func Auth(secret string, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not logged in",
			})
			return
		}

		claims, err := validateToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		// The token is only half of it: the session row must still exist
		// and the account must still be active.
		session, err := sessions.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || session.IsExpired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session expired",
			})
			return
		}
		if !session.User.IsActive() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "account disabled",
			})
			return
		}

		c.Set("userID", session.UserID)
		c.Set("userEmail", session.User.Email)
		c.Set("userRole", session.User.Role)
		c.Set("sessionID", session.ID)

		c.Next()
	}
}

// validateToken parses and validates a signed session token
func validateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}
	return userID.(uint)
}

// GetSessionID extracts the session ID from the Gin context
func GetSessionID(c *gin.Context) uint {
	sessionID, exists := c.Get("sessionID")
	if !exists {
		return 0
	}
	return sessionID.(uint)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("userRole")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the current user is an admin
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == models.RoleAdmin
}

// RequireAdmin returns a middleware that requires admin role
func RequireAdmin(auditor Auditor) gin.HandlerFunc {
	return RequireRole(auditor, models.RoleAdmin)
}

// RequireRole returns a middleware that requires one of the given roles.
// Admins always pass. Every denial is audited.
func RequireRole(auditor Auditor, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		if userRole == models.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		deny(c, auditor, "role:"+strings.Join(allowedRoles, "|"))
	}
}

// RequirePermission returns a middleware that checks the static
// role-permission table. Admins implicitly hold every permission.
// Every denial is audited.
func RequirePermission(auditor Auditor, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleHasPermission(GetUserRole(c), permission) {
			c.Next()
			return
		}

		deny(c, auditor, "permission:"+permission)
	}
}

func deny(c *gin.Context, auditor Auditor, requirement string) {
	if auditor != nil {
		userID := GetUserID(c)
		auditor.PermissionDenied(c.Request.Context(), &userID, requirement,
			c.FullPath(), c.ClientIP(), c.Request.UserAgent())
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error": "access denied",
	})
}
