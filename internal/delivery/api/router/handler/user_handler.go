package handler

import (
	"github.com/labstack/echo/v4"

	"savvy/internal/delivery/api/middleware"
	"savvy/internal/delivery/api/response"
	"savvy/internal/usecase"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type UpdateUserRequest struct {
	Name *string `json:"name" validate:"required,max=20"`
}

// RegisterUser handles POST /users.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.uc.RegisterUser(c.Request().Context(), usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Created(c, newUserResponse(user))
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	return response.OK(c, newUserResponse(user))
}

// UpdateUser handles PATCH /users/:user_id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	current, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), userID, current, usecase.UpdateUserInput{Name: req.Name})
	if err != nil {
		return err
	}

	return response.OK(c, newUserResponse(user))
}

// DeleteUser handles DELETE /users/:user_id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	current, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), userID, current); err != nil {
		return err
	}

	return response.OK(c, map[string]int64{"id": userID})
}
