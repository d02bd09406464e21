package model

import "time"

// Entity types a review can target.
const (
	EntityProfessional = "professional"
	EntityProduct      = "product"
	EntityProject      = "project"
	EntityArticle      = "article"
)

// ValidEntityType reports whether s names a reviewable entity type.
func ValidEntityType(s string) bool {
	switch s {
	case EntityProfessional, EntityProduct, EntityProject, EntityArticle:
		return true
	}
	return false
}

// Review statuses.  Reviews are created "pending" and only an external
// moderation flow moves them to another status; nothing in this service
// transitions it.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Rating bundles the overall score (required, 1-5) with four optional
// sub-scores (also 1-5 when present).
type Rating struct {
	Overall       uint8  `json:"overall"`
	Quality       *uint8 `json:"quality,omitempty"`
	Communication *uint8 `json:"communication,omitempty"`
	Value         *uint8 `json:"value,omitempty"`
	Timeliness    *uint8 `json:"timeliness,omitempty"`
}

// Review is a user's rating of a marketplace entity.  At most one review
// may exist per (reviewer, entity, entity type).
type Review struct {
	ID         uint64    `json:"id"`
	ReviewerID uint64    `json:"-"`
	EntityID   uint64    `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	Rating     Rating    `json:"rating"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Touch stamps the record as updated at the given instant.
func (r *Review) Touch(now time.Time) { r.UpdatedAt = now.UTC() }
