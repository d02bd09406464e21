package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/repository"
)

// MemberHandler bundles the repositories behind member-facing resources:
// reviews and ideabooks.  Any authenticated account (seller or customer)
// can use these endpoints; every query is scoped to the acting user.
type MemberHandler struct {
	Reviews   *repository.ReviewRepo
	Ideabooks *repository.IdeabookRepo

	DefaultLimit int
	MaxLimit     int
}

// NewMemberHandler constructs a MemberHandler and panics if any dependency
// is nil.
func NewMemberHandler(reviews *repository.ReviewRepo, ideabooks *repository.IdeabookRepo, defaultLimit, maxLimit int) *MemberHandler {
	if reviews == nil || ideabooks == nil {
		panic("nil repository passed to NewMemberHandler")
	}
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &MemberHandler{
		Reviews:      reviews,
		Ideabooks:    ideabooks,
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
	}
}

func (h *MemberHandler) paging(c echo.Context) (page, limit int) {
	return readPaging(c, h.DefaultLimit, h.MaxLimit)
}

// scoreInRange validates an optional 1-5 sub-score.
func scoreInRange(v *uint8) bool {
	return v == nil || (*v >= 1 && *v <= 5)
}

// validateRating checks the overall score and all sub-scores, returning
// field-level messages for anything out of range.
func validateRating(r model.Rating) map[string]string {
	fields := map[string]string{}
	if r.Overall < 1 || r.Overall > 5 {
		fields["rating.overall"] = "overall rating is required and must be between 1 and 5"
	}
	if !scoreInRange(r.Quality) {
		fields["rating.quality"] = "must be between 1 and 5"
	}
	if !scoreInRange(r.Communication) {
		fields["rating.communication"] = "must be between 1 and 5"
	}
	if !scoreInRange(r.Value) {
		fields["rating.value"] = "must be between 1 and 5"
	}
	if !scoreInRange(r.Timeliness) {
		fields["rating.timeliness"] = "must be between 1 and 5"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// unauthorized is shared by all member endpoints.
func unauthorized(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "unauthorized")
}
