package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Provider  string        `json:"provider"`
	View      enum.ViewKind `json:"view"`
	LastLogin *time.Time    `json:"last_login,omitempty"`
}

// LoginResponse is returned by the login endpoints
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

// NewUserResponse builds the public view of u
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Provider:  u.Provider,
		View:      enum.ViewForEmail(u.Email),
		LastLogin: u.LastLogin,
	}
}
