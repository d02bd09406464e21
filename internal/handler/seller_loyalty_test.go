package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/repository"
	"github.com/myhouz/myhouz-server/internal/service"
)

// newSellerHarness wires a SellerHandler over sqlmock-backed services, the
// same shape main builds minus Redis and the broker.
func newSellerHarness(t *testing.T) (*SellerHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	loyalty := service.NewLoyaltyService(repository.NewLoyaltyRepo(db), nil)
	registers := service.NewRegisterService(repository.NewRegisterRepo(db), nil)
	suppliers := repository.NewSupplierRepo(db)
	return NewSellerHandler(loyalty, registers, suppliers, 20, 100), mock
}

func sellerRequest(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", uint64(3)) // what JWTAuth would have set
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSpendPointsInsufficientBalance(t *testing.T) {
	h, mock := newSellerHarness(t)

	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "seller_id", "customer_name", "customer_email", "customer_phone",
			"points", "total_points_earned", "total_points_spent", "tier",
			"created_at", "updated_at",
		}).AddRow(7, 3, "Dana", nil, "+15550100", 40, 40, 0, model.TierBronze,
			time.Now().UTC(), time.Now().UTC()))

	c, rec := sellerRequest(t, http.MethodPost, "/v1/loyalty/customers/7/spend", `{"points":100}`)
	c.SetPath("/v1/loyalty/customers/:id/spend")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.SpendPoints(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "insufficient points: current balance is 40", env["message"])
}

func TestAddPointsUnknownCustomerIs404(t *testing.T) {
	h, mock := newSellerHarness(t)

	mock.ExpectQuery("SELECT (.+) FROM loyalty_programs WHERE id = \\? AND seller_id = \\?").
		WithArgs(uint64(999), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := sellerRequest(t, http.MethodPost, "/v1/loyalty/customers/999/points", `{"points":50}`)
	c.SetPath("/v1/loyalty/customers/:id/points")
	c.SetParamNames("id")
	c.SetParamValues("999")

	require.NoError(t, h.AddPoints(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnrollCustomerMissingContact(t *testing.T) {
	h, _ := newSellerHarness(t)

	c, rec := sellerRequest(t, http.MethodPost, "/v1/loyalty/customers", `{"name":"Dana"}`)
	c.SetPath("/v1/loyalty/customers")

	require.NoError(t, h.EnrollCustomer(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	errs, ok := env["errors"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, errs)
}

func TestListCustomersRejectsUnknownTier(t *testing.T) {
	h, _ := newSellerHarness(t)

	c, rec := sellerRequest(t, http.MethodGet, "/v1/loyalty/customers?tier=diamond", "")
	c.SetPath("/v1/loyalty/customers")

	require.NoError(t, h.ListCustomers(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
