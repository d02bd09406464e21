package router

import (
	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/handler"
	"github.com/myhouz/myhouz-server/internal/middleware"
)

// RegisterSeller registers SELLER-scoped endpoints under /v1.  All routes
// require a valid JWT and the SELLER role.  extra carries optional
// Redis-backed middlewares (rate limit, response cache) that degrade to
// pass-throughs when Redis is absent.
func RegisterSeller(e *echo.Echo, h *handler.SellerHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mws := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("SELLER"),
	}, extra...)
	g := e.Group("/v1", mws...)

	// ---- Loyalty programs ----
	g.POST("/loyalty/customers", h.EnrollCustomer)
	g.GET("/loyalty/customers", h.ListCustomers)
	g.GET("/loyalty/customers/:id", h.GetCustomer)
	g.GET("/loyalty/customers/:id/history", h.CustomerHistory)
	g.POST("/loyalty/customers/:id/points", h.AddPoints)
	g.POST("/loyalty/customers/:id/spend", h.SpendPoints)

	// ---- Cash registers ----
	g.POST("/registers", h.CreateRegister)
	g.GET("/registers", h.ListRegisters)
	g.GET("/registers/:id", h.GetRegister)
	g.PUT("/registers/:id", h.UpdateRegister)
	g.PATCH("/registers/:id", h.UpdateRegister)
	g.DELETE("/registers/:id", h.DeleteRegister)
	g.POST("/registers/:id/open", h.OpenRegister)
	g.POST("/registers/:id/close", h.CloseRegister)
	g.POST("/registers/:id/sales", h.RecordRegisterSale)

	// ---- Suppliers ----
	g.POST("/suppliers", h.CreateSupplier)
	g.GET("/suppliers", h.ListSuppliers)
	g.GET("/suppliers/:id", h.GetSupplier)
	g.PUT("/suppliers/:id", h.UpdateSupplier)
	g.PATCH("/suppliers/:id", h.UpdateSupplier)
	g.DELETE("/suppliers/:id", h.DeleteSupplier)
}
