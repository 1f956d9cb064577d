package auth

import (
	"fmt"
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPair bundles a freshly minted access and refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessID         string
	RefreshJTI       string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Minter signs and parses the JWTs used by the API.
type Minter struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewMinter(cfg config.JWTConfig) (*Minter, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive")
	}
	return &Minter{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  time.Duration(cfg.ExpirationMinutes) * time.Minute,
		refreshTTL: cfg.RefreshTokenTTL(),
	}, nil
}

// MintPair issues a matched access/refresh token pair sharing one access ID.
func (m *Minter) MintPair(userID, username string, roles []string) (*TokenPair, error) {
	now := time.Now()
	accessID := uuid.NewString()
	refreshJTI := uuid.NewString()
	accessExp := now.Add(m.accessTTL)
	refreshExp := now.Add(m.refreshTTL)

	accessClaims := AccessClaims{
		UserID:   userID,
		Username: username,
		Roles:    roles,
		AccessID: accessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExp),
			ID:        uuid.NewString(),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := RefreshClaims{
		UserID:   userID,
		AccessID: accessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        refreshJTI,
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessID:         accessID,
		RefreshJTI:       refreshJTI,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ParseAccessToken validates the signature, issuer and expiry of an access token.
func (m *Minter) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(raw, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.AccessID == "" {
		return nil, fmt.Errorf("access token missing identity claims")
	}
	return claims, nil
}

// ParseRefreshToken validates the signature, issuer and expiry of a refresh token.
func (m *Minter) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(raw, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.AccessID == "" || claims.ID == "" {
		return nil, fmt.Errorf("refresh token missing identity claims")
	}
	return claims, nil
}

func (m *Minter) parse(raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("token invalid")
	}
	return nil
}
