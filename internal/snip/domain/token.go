package domain

// AuthToken is a signed credential and its lifetime. It is never stored.
type AuthToken struct {
	Token            string `json:"token"`
	ExpiresInSeconds int64  `json:"expiresIn"`
}

// AuthResponse is the result of signing in or refreshing. RefreshToken is nil
// when only the access token was re-issued, and the existing refresh cookie
// must then be left alone.
type AuthResponse struct {
	User         User       `json:"user"`
	AccessToken  AuthToken  `json:"accessToken"`
	RefreshToken *AuthToken `json:"refreshToken,omitempty"`
}
