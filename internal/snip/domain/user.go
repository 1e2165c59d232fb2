package domain

import "time"

// User is a principal created on first OAuth sign-in. ProviderID is the
// provider's subject and never changes.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ProviderID string    `json:"providerId"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OAuthProfile is what an identity provider tells us about a user.
type OAuthProfile struct {
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}
