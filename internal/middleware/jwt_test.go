package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uint64(42),
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runProtected(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/registers", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	h := echo.HandlerFunc(func(c echo.Context) error {
		return c.String(http.StatusOK, "reached")
	})
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok := signToken(t, testSecret, "SELLER", time.Now().Add(time.Hour))
	rec := runProtected(t, "Bearer "+tok, JWTAuth(testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	rec := runProtected(t, "", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = runProtected(t, "Bearer not-a-jwt", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong signing secret.
	tok := signToken(t, "other-secret", "SELLER", time.Now().Add(time.Hour))
	rec = runProtected(t, "Bearer "+tok, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Expired.
	tok = signToken(t, testSecret, "SELLER", time.Now().Add(-time.Hour))
	rec = runProtected(t, "Bearer "+tok, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	seller := signToken(t, testSecret, "SELLER", time.Now().Add(time.Hour))
	customer := signToken(t, testSecret, "CUSTOMER", time.Now().Add(time.Hour))

	rec := runProtected(t, "Bearer "+seller, JWTAuth(testSecret), RequireRole("SELLER"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runProtected(t, "Bearer "+customer, JWTAuth(testSecret), RequireRole("SELLER"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runProtected(t, "Bearer "+customer, JWTAuth(testSecret), RequireRole("SELLER", "CUSTOMER"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
