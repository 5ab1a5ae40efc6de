package handler

import (
	"github.com/labstack/echo/v4"

	"savvy/internal/delivery/api/middleware"
	"savvy/internal/delivery/api/response"
	"savvy/internal/usecase"
)

type CategoryHandler struct {
	uc usecase.CategoryUsecase
}

func NewCategoryHandler(uc usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=16"`
	Description *string `json:"description" validate:"omitempty,max=50"`
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	categories, err := h.uc.ListCategories(c.Request().Context(), user)
	if err != nil {
		return err
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, newCategoryResponse(category))
	}

	return response.OK(c, out)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), user, usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return response.Created(c, newCategoryResponse(category))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	categoryID, err := pathID(c, "category_id")
	if err != nil {
		return err
	}

	category, err := h.uc.DeleteCategory(c.Request().Context(), user, categoryID)
	if err != nil {
		return err
	}

	return response.OK(c, newCategoryResponse(category))
}
