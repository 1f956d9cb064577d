package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims embedded in every access token.
type AccessClaims struct {
	UserID   string   `json:"uid"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	AccessID string   `json:"aid"`
	jwt.RegisteredClaims
}

// RefreshClaims are the JWT claims embedded in every refresh token.
type RefreshClaims struct {
	UserID   string `json:"uid"`
	AccessID string `json:"aid"`
	jwt.RegisteredClaims
}
