package handler // handler package contains member ideabook endpoints

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

func normalizeVisibility(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", model.IdeabookPrivate:
		return model.IdeabookPrivate, true
	case model.IdeabookPublic:
		return model.IdeabookPublic, true
	}
	return "", false
}

// CreateIdeabook handles POST /v1/ideabooks.
func (h *MemberHandler) CreateIdeabook(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"title": "title is required"})
	}
	visibility, ok := normalizeVisibility(body.Visibility)
	if !ok {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"visibility": "must be public or private"})
	}

	b := &model.Ideabook{
		OwnerID:     userID,
		Title:       title,
		Description: body.Description,
		Visibility:  visibility,
	}
	if err := h.Ideabooks.Create(c.Request().Context(), b); err != nil {
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusCreated, b, "ideabook created")
}

// ListIdeabooks handles GET /v1/ideabooks.
func (h *MemberHandler) ListIdeabooks(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	page, limit := h.paging(c)
	items, total, err := h.Ideabooks.ListByOwner(c.Request().Context(), userID, page, limit)
	if err != nil {
		return serverError(c, err)
	}
	return respondList(c, items, newPagination(page, limit, total))
}

// GetIdeabook handles GET /v1/ideabooks/:id and returns the ideabook with
// its saved items.
func (h *MemberHandler) GetIdeabook(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	b, err := h.Ideabooks.GetByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeabookNotFound) {
			return fail(c, http.StatusNotFound, "ideabook not found")
		}
		return serverError(c, err)
	}
	items, err := h.Ideabooks.Items(c.Request().Context(), b.ID)
	if err != nil {
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"ideabook": b, "items": items})
}

// UpdateIdeabook handles PUT/PATCH /v1/ideabooks/:id.
func (h *MemberHandler) UpdateIdeabook(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"title": "title is required"})
	}
	visibility, ok := normalizeVisibility(body.Visibility)
	if !ok {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"visibility": "must be public or private"})
	}

	b, err := h.Ideabooks.GetByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeabookNotFound) {
			return fail(c, http.StatusNotFound, "ideabook not found")
		}
		return serverError(c, err)
	}

	b.Title = title
	b.Description = body.Description
	b.Visibility = visibility
	b.Touch(time.Now())

	if err := h.Ideabooks.Save(c.Request().Context(), b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "ideabook not found")
		}
		return serverError(c, err)
	}
	return respondData(c, http.StatusOK, b)
}

// DeleteIdeabook handles DELETE /v1/ideabooks/:id and removes the
// ideabook together with its items.
func (h *MemberHandler) DeleteIdeabook(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Ideabooks.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrIdeabookNotFound) {
			return fail(c, http.StatusNotFound, "ideabook not found")
		}
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "ideabook deleted")
}

// AddIdeabookItem handles POST /v1/ideabooks/:id/items and saves a
// marketplace item into the ideabook.
func (h *MemberHandler) AddIdeabookItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		ItemType string `json:"item_type"`
		ItemRef  uint64 `json:"item_ref"`
		Note     string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.ValidEntityType(body.ItemType) {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"item_type": "unknown item type"})
	}
	if body.ItemRef == 0 {
		return failFields(c, http.StatusBadRequest, "validation failed", map[string]string{"item_ref": "item_ref is required"})
	}

	// Ownership check before touching items.
	if _, err := h.Ideabooks.GetByIDAndOwner(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrIdeabookNotFound) {
			return fail(c, http.StatusNotFound, "ideabook not found")
		}
		return serverError(c, err)
	}

	it := &model.IdeabookItem{
		IdeabookID: id,
		ItemType:   body.ItemType,
		ItemRef:    body.ItemRef,
		Note:       body.Note,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Ideabooks.AddItem(c.Request().Context(), it); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fail(c, http.StatusBadRequest, "item is already saved in this ideabook")
		}
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusCreated, it, "item saved")
}

// RemoveIdeabookItem handles DELETE /v1/ideabooks/:id/items/:item_id.
func (h *MemberHandler) RemoveIdeabookItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid item id")
	}

	if _, err := h.Ideabooks.GetByIDAndOwner(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrIdeabookNotFound) {
			return fail(c, http.StatusNotFound, "ideabook not found")
		}
		return serverError(c, err)
	}
	if err := h.Ideabooks.RemoveItem(c.Request().Context(), id, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return fail(c, http.StatusNotFound, "item not found")
		}
		return serverError(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "item removed")
}
