package handler // handler package contains seller loyalty endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/repository"
	"github.com/myhouz/myhouz-server/internal/service"
)

// EnrollCustomer handles POST /v1/loyalty/customers and enrolls a new
// loyalty customer for the authenticated seller.
func (h *SellerHandler) EnrollCustomer(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	p, err := h.Loyalty.Enroll(c.Request().Context(), sellerID, body.Name, body.Email, body.Phone)
	switch {
	case err == nil:
		return respondMessage(c, http.StatusCreated, p, "customer enrolled")
	case errors.Is(err, service.ErrNameRequired):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"name": "name is required"})
	case errors.Is(err, service.ErrContactRequired):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"phone": "phone or email is required"})
	case errors.Is(err, service.ErrDuplicateCustomer):
		return fail(c, http.StatusBadRequest, "customer is already enrolled")
	default:
		return serverError(c, err)
	}
}

// ListCustomers handles GET /v1/loyalty/customers with optional ?search=
// and ?tier= filters.  Results are ordered by points descending.
func (h *SellerHandler) ListCustomers(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	tier := strings.ToLower(strings.TrimSpace(c.QueryParam("tier")))
	if tier != "" && !model.ValidTier(tier) {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"tier": "unknown tier"})
	}
	page, limit := h.paging(c)

	items, total, err := h.Loyalty.List(c.Request().Context(), repository.ProgramSearchQuery{
		SellerID: sellerID,
		Search:   c.QueryParam("search"),
		Tier:     tier,
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return serverError(c, err)
	}
	return respondList(c, items, newPagination(page, limit, total))
}

// GetCustomer handles GET /v1/loyalty/customers/:id.
func (h *SellerHandler) GetCustomer(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	p, err := h.Loyalty.Get(c.Request().Context(), sellerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrProgramNotFound) {
			return fail(c, http.StatusNotFound, "customer not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, p)
}

// CustomerHistory handles GET /v1/loyalty/customers/:id/history and
// returns the program's recent earn/spend events.
func (h *SellerHandler) CustomerHistory(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	_, limit := h.paging(c)
	events, err := h.Loyalty.History(c.Request().Context(), sellerID, id, limit)
	if err != nil {
		if errors.Is(err, repository.ErrProgramNotFound) {
			return fail(c, http.StatusNotFound, "customer not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, events)
}

// AddPoints handles POST /v1/loyalty/customers/:id/points and credits
// points to the customer's program.
func (h *SellerHandler) AddPoints(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Points      int64  `json:"points"`
		Description string `json:"description"`
		SaleID      string `json:"saleId"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	p, err := h.Loyalty.Earn(c.Request().Context(), sellerID, id, body.Points, body.Description, body.SaleID)
	switch {
	case err == nil:
		return respondMessage(c, http.StatusOK, p, "points added")
	case errors.Is(err, service.ErrInvalidAmount):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"points": "points must be a positive amount"})
	case errors.Is(err, repository.ErrProgramNotFound):
		return fail(c, http.StatusNotFound, "customer not found")
	default:
		return serverError(c, err)
	}
}

// SpendPoints handles POST /v1/loyalty/customers/:id/spend and debits
// points from the customer's program.
func (h *SellerHandler) SpendPoints(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Points      int64  `json:"points"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	p, err := h.Loyalty.Spend(c.Request().Context(), sellerID, id, body.Points, body.Description)
	if err == nil {
		return respondMessage(c, http.StatusOK, p, "points spent")
	}
	var insufficient *service.InsufficientPointsError
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"points": "points must be a positive amount"})
	case errors.As(err, &insufficient):
		return fail(c, http.StatusBadRequest, insufficient.Error())
	case errors.Is(err, repository.ErrProgramNotFound):
		return fail(c, http.StatusNotFound, "customer not found")
	default:
		return serverError(c, err)
	}
}
