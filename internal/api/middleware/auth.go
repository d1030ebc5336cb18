package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// Context keys set by Auth.
const (
	KeyUserID   = "user_id"
	KeyUserName = "user_name"
	KeyRole     = "role"
)

// Auth validates the JWT and injects the caller's identity into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			name, _ := claims["name"].(string)
			roleClaim, _ := claims["role"].(string)
			role, err := domain.ParseRole(roleClaim)
			if sub == "" || err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
			}

			c.Set(KeyUserID, sub)
			c.Set(KeyUserName, name)
			c.Set(KeyRole, role)

			return next(c)
		}
	}
}
