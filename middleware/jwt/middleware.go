package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/jwt"
	"github.com/labstack/echo/v4"
)

const (
	PrincipalKey = "_jwt_principal"
	ClaimsKey    = "_jwt_claims"
)

func RequireJWT(jwtService *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString = strings.TrimSpace(tokenString)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "JWT token required")
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrExpiredToken):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, jwt.ErrMissingClaims):
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token payload")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
			}

			c.Set(PrincipalKey, claims.Principal())
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

// GetPrincipal returns the caller set by RequireJWT.
func GetPrincipal(c echo.Context) (models.Principal, bool) {
	principal, ok := c.Get(PrincipalKey).(models.Principal)
	return principal, ok
}

func GetClaims(c echo.Context) *jwt.Claims {
	if claims, ok := c.Get(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
