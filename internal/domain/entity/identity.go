package entity

import "github.com/google/uuid"

// Identity is the authenticated caller of a backend function.
type Identity struct {
	UserID        uuid.UUID `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Authenticated bool      `json:"authenticated"`
}

// IsAuthenticated is nil-safe.
func (i *Identity) IsAuthenticated() bool {
	return i != nil && i.Authenticated && i.Email != ""
}
