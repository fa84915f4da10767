package types

import "time"

// ContentStatus is the publication state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusScheduled ContentStatus = "scheduled"
)

// ValidContentStatus reports whether s is a known status.
func ValidContentStatus(s ContentStatus) bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusScheduled:
		return true
	}
	return false
}

// ContentItem is a generated piece of marketing copy owned by a single
// account.
type ContentItem struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"userId" db:"user_id"`

	// Type is a free-form tag describing the kind of copy
	// (e.g. "blog-post", "ad-copy", "social").
	Type string `json:"type" db:"type"`

	Title   string        `json:"title" db:"title"`
	Content string        `json:"content" db:"content"`
	Status  ContentStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
