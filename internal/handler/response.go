package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// All endpoints share one JSON envelope: successes carry
// {"success":true,"data":...} and failures {"success":false,"message":...}
// with optional field-level detail.  Validation messages are deliberately
// specific; 500 messages are deliberately generic.

// pagination describes one page of a list response.  Pages is the ceiling
// of total/limit.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func newPagination(page, limit int, total int64) pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func respondMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, echo.Map{"success": true, "data": data, "message": message})
}

func respondList(c echo.Context, data any, p pagination) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data, "pagination": p})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func failFields(c echo.Context, status int, message string, fields map[string]string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message, "errors": fields})
}

// serverError logs the underlying cause and returns a generic 500 so
// internals never leak to clients.
func serverError(c echo.Context, err error) error {
	log.Printf("handler: %s %s failed: %v", c.Request().Method, c.Path(), err)
	return fail(c, http.StatusInternalServerError, "internal server error")
}
