package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/myhouz/myhouz-server/internal/config"
)

func cacheContext(t *testing.T, userID any) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/suppliers?page=1", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetPath("/v1/suppliers")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKeyIsPerUser(t *testing.T) {
	strategies := []string{"route", "method_route", "method_route_query", "route_query"}
	for _, strategy := range strategies {
		cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: strategy}

		// Same route and query, different authenticated users: the entries
		// must never collide, or one seller would be served another's data.
		a := cacheKeyFrom(cfg, cacheContext(t, uint64(3)))
		b := cacheKeyFrom(cfg, cacheContext(t, uint64(99)))
		assert.NotEqual(t, a, b, "strategy %q", strategy)

		// Same user, same request: the key is stable so hits still happen.
		assert.Equal(t, a, cacheKeyFrom(cfg, cacheContext(t, uint64(3))), "strategy %q", strategy)
	}
}

func TestCacheKeyAnonymousVsAuthenticated(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	anon := cacheKeyFrom(cfg, cacheContext(t, nil))
	user := cacheKeyFrom(cfg, cacheContext(t, uint64(3)))
	assert.NotEqual(t, anon, user)
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	c1 := cacheContext(t, uint64(3))
	req := httptest.NewRequest(http.MethodGet, "/v1/suppliers?page=2", nil)
	c2 := echo.New().NewContext(req, httptest.NewRecorder())
	c2.SetPath("/v1/suppliers")
	c2.Set("user_id", uint64(3))

	assert.NotEqual(t, cacheKeyFrom(cfg, c1), cacheKeyFrom(cfg, c2))
}
