package service

import (
	"context"
	"fmt"

	"github.com/arslanca/portfolio/internal/hash"
	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/repo"
)

// EnsureAdmin provisions the admin account on startup when enabled by
// configuration. An already existing account is left untouched.
func EnsureAdmin(ctx context.Context, r *repo.GormRepo, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("admin bootstrap: ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}
	created, err := r.CreateUserIfNotExists(ctx, &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "admin",
	})
	if err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}
	l := logging.FromContext(ctx)
	if created {
		l.Info("admin_user_created", "username", username)
	} else {
		l.Info("admin_user_exists", "username", username)
	}
	return nil
}
