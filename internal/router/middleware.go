package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/auth"
	"github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/handler"
	"github.com/owlproh/api-yamdb/internal/repository"
)

// loadCurrentUser resolves validated JWT claims to the account record
// so downstream policy checks see the role as stored, not as claimed
// when the token was minted.
func loadCurrentUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			user, err := userRepo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
			}
			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// requireAdmin gates admin-or-superuser-only routes.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !auth.CanManageCatalog(handler.CurrentUser(c)) {
			httpErr := errors.MapErrorToHTTP(errors.ErrForbidden)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return next(c)
	}
}
