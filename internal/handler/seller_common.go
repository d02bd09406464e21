package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/repository"
	"github.com/myhouz/myhouz-server/internal/service"
)

// SellerHandler bundles the services and repositories behind the seller
// back office: registers, loyalty programs and suppliers.
type SellerHandler struct {
	Loyalty   *service.LoyaltyService
	Registers *service.RegisterService
	Suppliers *repository.SupplierRepo

	DefaultLimit int // page size when the client sends none
	MaxLimit     int // hard upper bound on page size
}

// NewSellerHandler constructs a SellerHandler and panics if any dependency
// is nil.
func NewSellerHandler(loyalty *service.LoyaltyService, registers *service.RegisterService, suppliers *repository.SupplierRepo, defaultLimit, maxLimit int) *SellerHandler {
	if loyalty == nil || registers == nil || suppliers == nil {
		panic("nil dependency passed to NewSellerHandler")
	}
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &SellerHandler{
		Loyalty:      loyalty,
		Registers:    registers,
		Suppliers:    suppliers,
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT claims decode numbers as float64, so several encodings are
// tolerated.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id (or other named) path parameter as uint64.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil
}

// paging reads ?page= and ?limit= with the handler's defaults applied.
// Page floors at 1; limit floors at 1 and caps at MaxLimit.
func (h *SellerHandler) paging(c echo.Context) (page, limit int) {
	return readPaging(c, h.DefaultLimit, h.MaxLimit)
}

func readPaging(c echo.Context, defaultLimit, maxLimit int) (page, limit int) {
	page = 1
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		page = n
	}
	limit = defaultLimit
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
