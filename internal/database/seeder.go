// server/internal/database/seeder.go
package database

import (
	"context"
	"errors"
	"fmt"

	"facility-accounts-api-server/config"
	"facility-accounts-api-server/internal/models"
	"facility-accounts-api-server/internal/store"

	"go.uber.org/zap"
)

// SuperuserCreator is the part of the account factory the seeder needs.
type SuperuserCreator interface {
	CreateSuperuser(ctx context.Context, username, password string, fields models.Fields) (*models.Account, error)
}

type UsernameFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

// SeedSuperuser creates the configured superuser unless it already exists.
func SeedSuperuser(ctx context.Context, creator SuperuserCreator, finder UsernameFinder, cfg config.SuperuserConfig, logger *zap.Logger) error {
	if cfg.Password == "" {
		logger.Info("no superuser password configured, seeding skipped")
		return nil
	}

	// Kiểm tra xem superuser đã tồn tại chưa
	_, err := finder.FindByUsername(ctx, cfg.Username)
	if err == nil {
		logger.Info("superuser already exists, seeding skipped", zap.String("username", cfg.Username))
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up superuser: %w", err)
	}

	logger.Info("superuser not found, seeding", zap.String("username", cfg.Username))
	account, err := creator.CreateSuperuser(ctx, cfg.Username, cfg.Password, models.Fields{
		Email:        cfg.Email,
		FacilityName: cfg.FacilityName,
		PhoneNum1:    cfg.PhoneNum1,
	})
	if err != nil {
		var uerr *store.UniquenessError
		if errors.As(err, &uerr) {
			// another instance seeded it between the lookup and the insert
			logger.Info("superuser seeded concurrently", zap.String("field", uerr.Field))
			return nil
		}
		return fmt.Errorf("seed superuser: %w", err)
	}

	logger.Info("superuser seeded successfully", zap.String("id", account.ID))
	return nil
}
