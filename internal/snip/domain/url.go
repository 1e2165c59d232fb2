package domain

import "time"

type URL struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Slug      string     `json:"slug"`
	UserID    *string    `json:"userId"` // nil for anonymous links
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// OwnedBy reports whether userID owns the link. Anonymous links have no owner.
func (u URL) OwnedBy(userID string) bool {
	return u.UserID != nil && userID != "" && *u.UserID == userID
}

// Deleted reports whether the link was soft deleted.
func (u URL) Deleted() bool { return u.DeletedAt != nil }
