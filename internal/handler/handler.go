package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
)

// currentUserKey is where the user-loader middleware stores the
// resolved account.
const currentUserKey = "currentUser"

// CurrentUser returns the authenticated user from the request context,
// nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

// SetCurrentUser stores the resolved account on the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// respondError translates a domain error into the standardized JSON
// error payload.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// pathID parses a numeric path parameter; a 404 is the right answer
// for garbage ids since no resource can live there.
func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return uint(id), nil
}

// listParams reads optional limit/offset query parameters.
func listParams(c echo.Context) (limit, offset int) {
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
