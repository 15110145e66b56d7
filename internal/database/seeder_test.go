package database

import (
	"context"
	"errors"
	"testing"

	"facility-accounts-api-server/config"
	"facility-accounts-api-server/internal/accounts"
	"facility-accounts-api-server/internal/auth"
	"facility-accounts-api-server/internal/models"
	"facility-accounts-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func seedConfig() config.SuperuserConfig {
	return config.SuperuserConfig{
		Username:     "admin",
		Password:     "admin-pass",
		Email:        "admin@example.com",
		FacilityName: "Head Office",
		PhoneNum1:    "0093700000000",
	}
}

func TestSeedSuperuser(t *testing.T) {
	s := store.NewMemoryStore()
	f := accounts.NewFactory(s, auth.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

	require.NoError(t, SeedSuperuser(context.Background(), f, s, seedConfig(), zap.NewNop()))
	acct, err := s.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, acct.IsStaff)
	assert.True(t, acct.IsSuperuser)

	// second run is a no-op
	require.NoError(t, SeedSuperuser(context.Background(), f, s, seedConfig(), zap.NewNop()))
	assert.Equal(t, 1, s.Len())
}

func TestSeedSuperuser_SkippedWithoutPassword(t *testing.T) {
	s := store.NewMemoryStore()
	f := accounts.NewFactory(s, auth.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())
	cfg := seedConfig()
	cfg.Password = ""

	require.NoError(t, SeedSuperuser(context.Background(), f, s, cfg, zap.NewNop()))
	assert.Equal(t, 0, s.Len())
}

func TestSeedSuperuser_InvalidConfig(t *testing.T) {
	s := store.NewMemoryStore()
	f := accounts.NewFactory(s, auth.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())
	cfg := seedConfig()
	cfg.PhoneNum1 = "12345"

	err := SeedSuperuser(context.Background(), f, s, cfg, zap.NewNop())
	var verr *accounts.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "phone_num1", verr.Field)
}

type failingFinder struct{}

func (failingFinder) FindByUsername(context.Context, string) (*models.Account, error) {
	return nil, errors.New("connection refused")
}

func TestSeedSuperuser_LookupFailure(t *testing.T) {
	s := store.NewMemoryStore()
	f := accounts.NewFactory(s, auth.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

	err := SeedSuperuser(context.Background(), f, failingFinder{}, seedConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}
