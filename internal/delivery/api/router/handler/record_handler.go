package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"savvy/internal/delivery/api/middleware"
	"savvy/internal/delivery/api/response"
	"savvy/internal/usecase"
)

type RecordHandler struct {
	uc usecase.RecordUsecase
}

func NewRecordHandler(uc usecase.RecordUsecase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

type CreateRecordRequest struct {
	Amount      int64     `json:"amount" validate:"gt=0"`
	Description *string   `json:"description" validate:"required,max=30"` // present, may be empty
	Date        time.Time `json:"date" validate:"required"`
	CategoryID  int64     `json:"category_id" validate:"gt=0"`
}

// ListRecords handles GET /records?sort=.
func (h *RecordHandler) ListRecords(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	records, err := h.uc.ListRecords(c.Request().Context(), user, c.QueryParam("sort"))
	if err != nil {
		return err
	}

	out := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, newRecordResponse(record))
	}

	return response.OK(c, out)
}

func (h *RecordHandler) CreateRecord(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateRecordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	record, err := h.uc.CreateRecord(c.Request().Context(), user, usecase.CreateRecordInput{
		Amount:      req.Amount,
		Description: *req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	return response.Created(c, newRecordResponse(record))
}

// DeleteRecord returns the deleted record without its category.
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	recordID, err := pathID(c, "record_id")
	if err != nil {
		return err
	}

	record, err := h.uc.DeleteRecord(c.Request().Context(), user, recordID)
	if err != nil {
		return err
	}

	out := newRecordResponse(record)
	out.Category = nil

	return response.OK(c, out)
}
