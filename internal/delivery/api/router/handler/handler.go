// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"savvy/internal/delivery/api/response"
	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/errors"
)

// bind decodes the request and runs the struct validation rules.
// Malformed bodies and rule violations both surface as 422.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("malformed request body"))
	}

	return errors.WithStack(c.Validate(req))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(name + " must be a positive integer"))
	}

	return id, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Response bodies ---

type UserResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CategoriesCount int       `json:"categories_count"`
}

func newUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		CategoriesCount: u.CategoriesCount,
	}
}

type CategoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func newCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

type RecordResponse struct {
	ID          int64             `json:"id"`
	Amount      int64             `json:"amount"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

func newRecordResponse(r *entity.Record) RecordResponse {
	out := RecordResponse{
		ID:          r.ID,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
	}
	if r.Category != nil {
		category := newCategoryResponse(r.Category)
		out.Category = &category
	}

	return out
}
