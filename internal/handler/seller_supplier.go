package handler // handler package contains seller supplier endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/repository"
)

type supplierBody struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// CreateSupplier handles POST /v1/suppliers.
func (h *SellerHandler) CreateSupplier(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var body supplierBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"name": "name is required"})
	}

	s := &model.Supplier{
		SellerID:    sellerID,
		Name:        name,
		ContactName: strings.TrimSpace(body.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(body.Email)),
		Phone:       strings.TrimSpace(body.Phone),
		Category:    strings.TrimSpace(body.Category),
		Address:     strings.TrimSpace(body.Address),
		Notes:       body.Notes,
	}
	if err := h.Suppliers.Create(c.Request().Context(), s); err != nil {
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusCreated, s, "supplier created")
}

// ListSuppliers handles GET /v1/suppliers with optional ?category= and
// ?search= filters.
func (h *SellerHandler) ListSuppliers(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	page, limit := h.paging(c)

	items, total, err := h.Suppliers.List(c.Request().Context(), repository.SupplierFilter{
		SellerID: sellerID,
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   c.QueryParam("search"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return serverError(c, err)
	}
	return respondList(c, items, newPagination(page, limit, total))
}

// GetSupplier handles GET /v1/suppliers/:id.
func (h *SellerHandler) GetSupplier(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	s, err := h.Suppliers.GetByIDAndSeller(c.Request().Context(), id, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return fail(c, http.StatusNotFound, "supplier not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, s)
}

// UpdateSupplier handles PUT/PATCH /v1/suppliers/:id.  The body fully
// replaces the editable fields.
func (h *SellerHandler) UpdateSupplier(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body supplierBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"name": "name is required"})
	}

	s, err := h.Suppliers.GetByIDAndSeller(c.Request().Context(), id, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return fail(c, http.StatusNotFound, "supplier not found")
		}
		return serverError(c, err)
	}

	s.Name = name
	s.ContactName = strings.TrimSpace(body.ContactName)
	s.Email = strings.ToLower(strings.TrimSpace(body.Email))
	s.Phone = strings.TrimSpace(body.Phone)
	s.Category = strings.TrimSpace(body.Category)
	s.Address = strings.TrimSpace(body.Address)
	s.Notes = body.Notes
	s.Touch(time.Now())

	if err := h.Suppliers.Save(c.Request().Context(), s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "supplier not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, s)
}

// DeleteSupplier handles DELETE /v1/suppliers/:id.
func (h *SellerHandler) DeleteSupplier(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Suppliers.Delete(c.Request().Context(), id, sellerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "supplier not found")
		}
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "supplier deleted")
}
