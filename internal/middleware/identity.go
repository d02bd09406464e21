package middleware

// identity.go provides the user identifier used for rate-limit bucket
// keys and response cache keys.  JWTAuth stores the numeric subject claim
// under "user_id"; when no user is authenticated the caller is treated as
// anonymous.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's id as a string, or
// "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
