package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. A
// missing user_id means the middleware did not run on this route; reject
// with 401 before any service call.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return userID, role, nil
}

// requireSelf enforces self-only access: the authenticated user may only
// operate on its own resource. Ownership is checked here, once, against
// the path parameter; services trust the caller after this point.
func requireSelf(c echo.Context, pathParam string) (userID string, err error) {
	userID, _, err = ctxClaims(c)
	if err != nil {
		return "", err
	}
	if c.Param(pathParam) != userID {
		return "", echo.NewHTTPError(http.StatusForbidden, "access forbidden")
	}
	return userID, nil
}
