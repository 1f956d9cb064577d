package auth

import (
	"time"

	"github.com/FamilyDinnerTime/backend/internal/users"
)

// RegisterInput captures the data required to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// AuthResultDTO is returned by login, register and refresh.
type AuthResultDTO struct {
	User            *users.UserDTO `json:"user"`
	AccessToken     string         `json:"access_token"`
	RefreshToken    string         `json:"refresh_token"`
	AccessExpiresAt time.Time      `json:"access_expires_at"`
}
