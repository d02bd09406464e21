package handler // handler package contains member review endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/repository"
)

type reviewBody struct {
	EntityID   uint64       `json:"entity_id"`
	EntityType string       `json:"entity_type"`
	Title      string       `json:"title"`
	Comment    string       `json:"comment"`
	Rating     model.Rating `json:"rating"`
}

// CreateReview handles POST /v1/reviews.  One review per (reviewer,
// entity, entity type); duplicates are rejected.
func (h *MemberHandler) CreateReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var body reviewBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	fields := validateRating(body.Rating)
	if body.EntityID == 0 {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["entity_id"] = "entity_id is required"
	}
	if !model.ValidEntityType(body.EntityType) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["entity_type"] = "unknown entity type"
	}
	if fields != nil {
		return failFields(c, http.StatusBadRequest, "validation failed", fields)
	}

	rv := &model.Review{
		ReviewerID: userID,
		EntityID:   body.EntityID,
		EntityType: body.EntityType,
		Title:      strings.TrimSpace(body.Title),
		Comment:    body.Comment,
		Rating:     body.Rating,
		Status:     model.ReviewPending,
	}
	if err := h.Reviews.Create(c.Request().Context(), rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fail(c, http.StatusBadRequest, "you have already reviewed this item")
		}
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusCreated, rv, "review submitted")
}

// ListReviews handles GET /v1/reviews and returns the acting user's
// reviews, newest first.
func (h *MemberHandler) ListReviews(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	page, limit := h.paging(c)
	items, total, err := h.Reviews.ListByReviewer(c.Request().Context(), userID, page, limit)
	if err != nil {
		return serverError(c, err)
	}
	return respondList(c, items, newPagination(page, limit, total))
}

// GetReview handles GET /v1/reviews/:id.
func (h *MemberHandler) GetReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	rv, err := h.Reviews.GetByIDAndReviewer(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return fail(c, http.StatusNotFound, "review not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, rv)
}

// UpdateReview handles PUT/PATCH /v1/reviews/:id.  Title, comment and
// ratings are editable; the target entity and the moderation status are
// not.
func (h *MemberHandler) UpdateReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Title   string       `json:"title"`
		Comment string       `json:"comment"`
		Rating  model.Rating `json:"rating"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if fields := validateRating(body.Rating); fields != nil {
		return failFields(c, http.StatusBadRequest, "validation failed", fields)
	}

	rv, err := h.Reviews.GetByIDAndReviewer(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return fail(c, http.StatusNotFound, "review not found")
		}
		return serverError(c, err)
	}

	rv.Title = strings.TrimSpace(body.Title)
	rv.Comment = body.Comment
	rv.Rating = body.Rating
	rv.Touch(time.Now())

	if err := h.Reviews.Save(c.Request().Context(), rv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "review not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, rv)
}

// DeleteReview handles DELETE /v1/reviews/:id.
func (h *MemberHandler) DeleteReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Reviews.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "review not found")
		}
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "review deleted")
}
