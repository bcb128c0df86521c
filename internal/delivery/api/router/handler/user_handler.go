package handler

import (
	"net/http"

	"notes/internal/delivery/api/response"
	"notes/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	uc usecase.AccountUsecase
}

func NewUserHandler(uc usecase.AccountUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetProfile handles the request to get the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetProfile(c.Request().Context(), caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) DeleteAccount(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), caller); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
