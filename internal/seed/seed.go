package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/auth"
)

// Default admin credentials for a fresh deployment. The password must
// be rotated after first login; this only exists so the instance is
// administrable at all before any user has registered.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin1234"
)

// CreateDefaultData seeds the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, store repositories.Store, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin account)...")

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: defaultAdminUsername,
		Password: hashed,
		Role:     models.RoleAdmin,
		FullName: "Administrator",
		Email:    "admin@campushub.local",
	}

	if err := store.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			lgr.Debug().Msg("Default admin already exists, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Int64("userID", admin.ID).Msg("Default admin account created")
	return nil
}
