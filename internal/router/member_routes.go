package router

import (
	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/handler"
	"github.com/myhouz/myhouz-server/internal/middleware"
)

// RegisterMember registers endpoints any authenticated account can use:
// reviews written by the caller and the caller's ideabooks.  Sellers and
// customers both qualify.
func RegisterMember(e *echo.Echo, h *handler.MemberHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mws := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("SELLER", "CUSTOMER"),
	}, extra...)
	g := e.Group("/v1", mws...)

	// ---- Reviews ----
	g.POST("/reviews", h.CreateReview)
	g.GET("/reviews", h.ListReviews)
	g.GET("/reviews/:id", h.GetReview)
	g.PUT("/reviews/:id", h.UpdateReview)
	g.PATCH("/reviews/:id", h.UpdateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)

	// ---- Ideabooks ----
	g.POST("/ideabooks", h.CreateIdeabook)
	g.GET("/ideabooks", h.ListIdeabooks)
	g.GET("/ideabooks/:id", h.GetIdeabook)
	g.PUT("/ideabooks/:id", h.UpdateIdeabook)
	g.PATCH("/ideabooks/:id", h.UpdateIdeabook)
	g.DELETE("/ideabooks/:id", h.DeleteIdeabook)
	g.POST("/ideabooks/:id/items", h.AddIdeabookItem)
	g.DELETE("/ideabooks/:id/items/:item_id", h.RemoveIdeabookItem)
}
