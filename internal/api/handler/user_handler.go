package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-kemen/tomato-market/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateProfileRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=32"`
}

type listUsersResponse struct {
	Items      []userResponse     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

// GetProfile returns the authenticated user's own profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id (must match the token)"
// @Success      200     {object}  userResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /users/{userId} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := requireSelf(c, "userId")
	if err != nil {
		return err
	}

	view, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(view))
}

// UpdateProfile changes the authenticated user's nickname.
//
// @Summary      Update own nickname
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                true  "User id (must match the token)"
// @Param        body    body      updateProfileRequest  true  "New nickname"
// @Success      200     {object}  userResponse
// @Failure      403     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /users/{userId} [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := requireSelf(c, "userId")
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.userService.UpdateProfile(c.Request().Context(), userID, req.Nickname)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(view))
}

// ListUsers returns a page of customer accounts.
//
// @Summary      List customers
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "1-based page"
// @Param        size     query     int     false  "page size (max 100)"
// @Param        sort_by  query     string  false  "sort field"
// @Param        asc      query     bool    false  "ascending order"
// @Success      200      {object}  listUsersResponse
// @Failure      403      {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	res, err := h.userService.ListUsers(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}

	items := make([]userResponse, len(res.Items))
	for i := range res.Items {
		items[i] = newUserResponse(&res.Items[i])
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Items:      items,
		Pagination: newPaginationResponse(res.Pagination),
	})
}
