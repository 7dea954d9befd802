package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey - key type for echo context values set by the middleware.
type ContextKey string

const (
	// MakerIDKey - context key for the authenticated maker's ID.
	MakerIDKey ContextKey = "maker_id"
	// MakerLoginKey - context key for the authenticated maker's login.
	MakerLoginKey ContextKey = "maker_login"
)

// JWTMiddleware validates the JWT on incoming requests and stores the maker
// identity in the request context. The token is read from the Authorization
// header first, then from the cookie.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractTokenFromHeader(c)

			if token == "" {
				token = extractTokenFromCookie(c)
			}

			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}

			claims, err := ValidateToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(string(MakerIDKey), claims.MakerID)
			c.Set(string(MakerLoginKey), claims.Login)

			return next(c)
		}
	}
}

func extractTokenFromHeader(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}

	return ""
}

func extractTokenFromCookie(c echo.Context) string {
	cookie, err := c.Cookie("Authorization")
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetMakerIDFromContext extracts the authenticated maker's ID from the
// request context.
func GetMakerIDFromContext(c echo.Context) (uuid.UUID, error) {
	makerID, ok := c.Get(string(MakerIDKey)).(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "maker not found in context")
	}
	return makerID, nil
}
