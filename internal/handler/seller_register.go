package handler // handler package contains seller register endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/repository"
	"github.com/myhouz/myhouz-server/internal/service"
)

// CreateRegister handles POST /v1/registers and creates a register in the
// closed state for the authenticated seller.
func (h *SellerHandler) CreateRegister(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var body struct {
		Name                string `json:"name"`
		OpeningBalanceCents int64  `json:"opening_balance_cents"`
		Notes               string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	reg, err := h.Registers.Create(c.Request().Context(), sellerID, body.Name, body.OpeningBalanceCents, body.Notes)
	switch {
	case err == nil:
		return respondMessage(c, http.StatusCreated, reg, "register created")
	case errors.Is(err, service.ErrNameRequired):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"name": "name is required"})
	default:
		return serverError(c, err)
	}
}

// ListRegisters handles GET /v1/registers.
func (h *SellerHandler) ListRegisters(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	page, limit := h.paging(c)
	items, total, err := h.Registers.List(c.Request().Context(), sellerID, page, limit)
	if err != nil {
		return serverError(c, err)
	}
	return respondList(c, items, newPagination(page, limit, total))
}

// GetRegister handles GET /v1/registers/:id.
func (h *SellerHandler) GetRegister(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	reg, err := h.Registers.Get(c.Request().Context(), sellerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegisterNotFound) {
			return fail(c, http.StatusNotFound, "register not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, reg)
}

// OpenRegister handles POST /v1/registers/:id/open and starts a trading
// session.
func (h *SellerHandler) OpenRegister(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		OpeningBalanceCents int64 `json:"opening_balance_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	reg, err := h.Registers.Open(c.Request().Context(), sellerID, id, body.OpeningBalanceCents)
	if err == nil {
		return respondMessage(c, http.StatusOK, reg, "register opened")
	}
	var state *service.InvalidStateError
	switch {
	case errors.As(err, &state):
		return fail(c, http.StatusBadRequest, state.Reason)
	case errors.Is(err, repository.ErrRegisterNotFound):
		return fail(c, http.StatusNotFound, "register not found")
	default:
		return serverError(c, err)
	}
}

// CloseRegister handles POST /v1/registers/:id/close and ends the trading
// session with a counted closing balance.
func (h *SellerHandler) CloseRegister(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		ClosingBalanceCents int64   `json:"closing_balance_cents"`
		Notes               *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	reg, err := h.Registers.Close(c.Request().Context(), sellerID, id, body.ClosingBalanceCents, body.Notes)
	if err == nil {
		return respondMessage(c, http.StatusOK, reg, "register closed")
	}
	var state *service.InvalidStateError
	switch {
	case errors.As(err, &state):
		return fail(c, http.StatusBadRequest, state.Reason)
	case errors.Is(err, repository.ErrRegisterNotFound):
		return fail(c, http.StatusNotFound, "register not found")
	default:
		return serverError(c, err)
	}
}

// RecordRegisterSale handles POST /v1/registers/:id/sales and adds one
// sale to the open session's counters.
func (h *SellerHandler) RecordRegisterSale(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	reg, err := h.Registers.RecordSale(c.Request().Context(), sellerID, id, body.AmountCents)
	if err == nil {
		return respondData(c, http.StatusOK, reg)
	}
	var state *service.InvalidStateError
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"amount_cents": "amount must be positive"})
	case errors.As(err, &state):
		return fail(c, http.StatusBadRequest, state.Reason)
	case errors.Is(err, repository.ErrRegisterNotFound):
		return fail(c, http.StatusNotFound, "register not found")
	default:
		return serverError(c, err)
	}
}

// UpdateRegister handles PUT/PATCH /v1/registers/:id and updates the name
// and/or notes.
func (h *SellerHandler) UpdateRegister(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Name  *string `json:"name"`
		Notes *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	reg, err := h.Registers.Update(c.Request().Context(), sellerID, id, body.Name, body.Notes)
	switch {
	case err == nil:
		return respondData(c, http.StatusOK, reg)
	case errors.Is(err, service.ErrNameRequired):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"name": "name is required"})
	case errors.Is(err, repository.ErrRegisterNotFound), errors.Is(err, sql.ErrNoRows):
		return fail(c, http.StatusNotFound, "register not found")
	default:
		return serverError(c, err)
	}
}

// DeleteRegister handles DELETE /v1/registers/:id.  Open registers must
// be closed first.
func (h *SellerHandler) DeleteRegister(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	err = h.Registers.Delete(c.Request().Context(), sellerID, id)
	if err == nil {
		return respondMessage(c, http.StatusOK, nil, "register deleted")
	}
	var state *service.InvalidStateError
	switch {
	case errors.As(err, &state):
		return fail(c, http.StatusBadRequest, state.Reason)
	case errors.Is(err, repository.ErrRegisterNotFound), errors.Is(err, sql.ErrNoRows):
		return fail(c, http.StatusNotFound, "register not found")
	default:
		return serverError(c, err)
	}
}
