package auth

import (
	"context"
	"errors"

	"github.com/FamilyDinnerTime/backend/internal/users"
	"github.com/FamilyDinnerTime/backend/pkg/config"
	"github.com/FamilyDinnerTime/backend/pkg/enums"
	"github.com/FamilyDinnerTime/backend/pkg/logger"
	"github.com/FamilyDinnerTime/backend/pkg/security"
	"gorm.io/gorm"
)

// EnsureAdmin seeds the admin account on startup when enabled by
// configuration. It is a no-op when the account already exists.
func EnsureAdmin(ctx context.Context, cfg config.BootstrapConfig, passwordCfg config.PasswordConfig, repo usersRepository, logg *logger.Logger) error {
	if !cfg.InitAdmin {
		return nil
	}

	if _, err := repo.FindByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword, passwordCfg)
	if err != nil {
		return err
	}

	admin, err := repo.Create(ctx, users.CreateUserDTO{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	role, err := repo.FindRoleByName(ctx, enums.RoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logg.Warn(ctx, "admin role missing, admin account created without it")
			return nil
		}
		return err
	}
	if err := repo.AssignRole(ctx, admin.ID, role.ID); err != nil {
		return err
	}

	logg.Info(logg.WithUserID(ctx, admin.ID.String()), "admin account bootstrapped")
	return nil
}
