package model

import "time"

// Ideabook visibility values.
const (
	IdeabookPublic  = "public"
	IdeabookPrivate = "private"
)

// Ideabook is a user-curated collection of saved marketplace items.
type Ideabook struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Touch stamps the record as updated at the given instant.
func (b *Ideabook) Touch(now time.Time) { b.UpdatedAt = now.UTC() }

// IdeabookItem is a single saved entry inside an ideabook.  ItemType uses
// the same entity-type values as reviews (project, product, professional,
// article); ItemRef is the id of that entity.
type IdeabookItem struct {
	ID         uint64    `json:"id"`
	IdeabookID uint64    `json:"-"`
	ItemType   string    `json:"item_type"`
	ItemRef    uint64    `json:"item_ref"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
