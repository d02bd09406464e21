package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationCeilsPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{100, 10, 10},
	}
	for _, tc := range cases {
		p := newPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.pages, p.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func newTestContext(t *testing.T, query string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/suppliers"+query, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func TestReadPagingDefaultsAndCaps(t *testing.T) {
	c := newTestContext(t, "")
	page, limit := readPaging(c, 20, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	c = newTestContext(t, "?page=3&limit=50")
	page, limit = readPaging(c, 20, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	// Out-of-range values floor at the default and cap at the max.
	c = newTestContext(t, "?page=0&limit=9999")
	page, limit = readPaging(c, 20, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	c = newTestContext(t, "?page=-2&limit=abc")
	page, limit = readPaging(c, 20, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	assert.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
