package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/FamilyDinnerTime/backend/internal/users"
	pkgauth "github.com/FamilyDinnerTime/backend/pkg/auth"
	"github.com/FamilyDinnerTime/backend/pkg/config"
	"github.com/FamilyDinnerTime/backend/pkg/db"
	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/FamilyDinnerTime/backend/pkg/enums"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/FamilyDinnerTime/backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type usersRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindRoleByName(ctx context.Context, name enums.RoleName) (*models.Role, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
}

type sessionManager interface {
	Start(ctx context.Context, userID string, pair *pkgauth.TokenPair) error
	Rotate(ctx context.Context, userID, oldAccessID, oldJTI string, next *pkgauth.TokenPair) error
	Revoke(ctx context.Context, userID, accessID, jti string) error
	HasRefreshSession(ctx context.Context, jti string) (bool, error)
}

type tokenMinter interface {
	MintPair(userID, username string, roles []string) (*pkgauth.TokenPair, error)
	ParseRefreshToken(raw string) (*pkgauth.RefreshClaims, error)
}

// Service exposes the authentication operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error)
	Login(ctx context.Context, username, password string) (*AuthResultDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResultDTO, error)
	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	repo        usersRepository
	sessions    sessionManager
	minter      tokenMinter
	passwordCfg config.PasswordConfig
}

// NewService builds an auth service with the provided collaborators.
func NewService(repo usersRepository, sessions sessionManager, minter tokenMinter, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if minter == nil {
		return nil, fmt.Errorf("token minter required")
	}
	return &service{
		repo:        repo,
		sessions:    sessions,
		minter:      minter,
		passwordCfg: passwordCfg,
	}, nil
}

// Register creates an account, grants the default role and issues tokens.
// The username and email pre-checks give callers a precise error; the unique
// constraints remain the authoritative guard under concurrent registration.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error) {
	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup username")
	}
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, users.CreateUserDTO{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, "uq_users_username"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		case db.IsUniqueViolation(err, "uq_users_email"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already taken")
		case db.IsUniqueViolation(err, ""):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "account already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	// Missing ROLE_USER reference data is tolerated; the account simply
	// starts with no roles.
	if role, err := s.repo.FindRoleByName(ctx, enums.RoleUser); err == nil {
		if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign default role")
		}
		user.Roles = append(user.Roles, *role)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup default role")
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues tokens. Unknown usernames and wrong
// passwords are deliberately indistinguishable to the caller.
func (s *service) Login(ctx context.Context, username, password string) (*AuthResultDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.Enabled {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a live refresh token into a fresh token pair.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResultDTO, error) {
	claims, err := s.minter.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	live, err := s.sessions.HasRefreshSession(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check refresh session")
	}
	if !live {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.Enabled {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	pair, err := s.minter.MintPair(user.ID.String(), user.Username, roleNames(user))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint tokens")
	}
	if err := s.sessions.Rotate(ctx, claims.UserID, claims.AccessID, claims.ID, pair); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	return &AuthResultDTO{
		User:            users.FromModel(user),
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt,
	}, nil
}

// Logout revokes the session pair behind the provided refresh token.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.minter.ParseRefreshToken(refreshToken)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}
	if err := s.sessions.Revoke(ctx, claims.UserID, claims.AccessID, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*AuthResultDTO, error) {
	pair, err := s.minter.MintPair(user.ID.String(), user.Username, roleNames(user))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint tokens")
	}
	if err := s.sessions.Start(ctx, user.ID.String(), pair); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session")
	}
	return &AuthResultDTO{
		User:            users.FromModel(user),
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt,
	}, nil
}

func roleNames(user *models.User) []string {
	names := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		names = append(names, role.Name.String())
	}
	return names
}
