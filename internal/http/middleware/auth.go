package middleware

import (
	"net/http"
	"strings"

	"goldlinks/internal/auth"
	"goldlinks/pkg/models"

	"github.com/labstack/echo/v4"
)

// JWTAuth middleware validates JWT access tokens
func JWTAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString := strings.TrimSpace(authHeader[len("Bearer "):])
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// refresh tokens only work on /auth/refresh
			if claims.Type != auth.TokenTypeAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token type")
			}

			c.Set("claims", claims)
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)

			return next(c)
		}
	}
}

// RequireRole middleware ensures user has required role
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("user_role").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			for _, role := range roles {
				if roleStr == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// OwnerOrAdmin allows business owners and system admins
func OwnerOrAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleBusinessOwner, models.RoleSystemAdmin)
}
