package domain

import (
	"time"

	"github.com/google/uuid"
)

// Seed is the registry row for a seed entity. Business state (content, tags,
// categories, followups) is never stored here — it is derived by replaying the
// transaction log. Slug is assigned once, lazily, and immutable afterwards.
type Seed struct {
	ID        uuid.UUID
	Slug      *string
	CreatedAt time.Time
}

// Tag is the registry row for a tag entity.
type Tag struct {
	ID        uuid.UUID
	Slug      *string
	CreatedAt time.Time
}

// SeedState is the projected state of a seed, derived purely from its
// transaction log.
type SeedState struct {
	ID         uuid.UUID  `json:"id"`
	Content    string     `json:"content"`
	TagIDs     []string   `json:"tag_ids"`
	Categories []string   `json:"categories"`
	Color      *string    `json:"color,omitempty"`
	Followups  []Followup `json:"followups"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Followup is a sprout followup attached to a seed via add_followup.
type Followup struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// HasTag reports whether the projected state contains the tag id.
func (s *SeedState) HasTag(tagID string) bool {
	for _, id := range s.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// TagState is the projected state of a tag entity.
type TagState struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
