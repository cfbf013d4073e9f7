package connection

import "time"

// Connection is the seller's link to a MercadoLibre account. Tokens are
// obtained by the external OAuth flow and stored here as-is.
type Connection struct {
	UserID       int       `json:"userId"`
	MeliUserID   int64     `json:"meliUserId"`
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Expired reports whether the access token is no longer usable at now.
// A zero ExpiresAt never expires.
func (c Connection) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
