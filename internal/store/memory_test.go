package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-accounts-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(username, email, facility string) *models.Account {
	return &models.Account{
		Username:     username,
		Email:        email,
		FacilityName: facility,
		PhoneNum1:    "0093123456789",
		IsActive:     true,
	}
}

func TestMemoryStore_InsertAssignsIdentity(t *testing.T) {
	s := NewMemoryStore()
	in := testAccount("clinic", "a@example.com", "Clinic A")

	saved, err := s.Insert(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, "clinic", saved.UsernameKey)
	assert.Empty(t, in.ID, "input must not be mutated")
}

func TestMemoryStore_InsertKeepsPresetCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	in := testAccount("clinic", "a@example.com", "Clinic A")
	in.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	saved, err := s.Insert(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.CreatedAt, saved.CreatedAt)
}

func TestMemoryStore_UniqueFields(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Insert(context.Background(), testAccount("clinic", "a@example.com", "Clinic A"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		account *models.Account
		field   string
	}{
		{"username", testAccount("Clinic", "b@example.com", "Clinic B"), FieldUsername},
		{"email", testAccount("other", "a@example.com", "Clinic B"), FieldEmail},
		{"facility", testAccount("other", "b@example.com", "Clinic A"), FieldFacilityName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(context.Background(), tt.account)
			var uerr *UniquenessError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, tt.field, uerr.Field)
		})
	}
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_FindByUsername(t *testing.T) {
	s := NewMemoryStore()
	saved, err := s.Insert(context.Background(), testAccount("Clinic", "a@example.com", "Clinic A"))
	require.NoError(t, err)

	found, err := s.FindByUsername(context.Background(), "clinic")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, "Clinic", found.Username)

	_, err = s.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FindByID(t *testing.T) {
	s := NewMemoryStore()
	saved, err := s.Insert(context.Background(), testAccount("clinic", "a@example.com", "Clinic A"))
	require.NoError(t, err)

	found, err := s.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Email, found.Email)

	_, err = s.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsernameKey(t *testing.T) {
	assert.Equal(t, UsernameKey("clinic"), UsernameKey("CLINIC"))
	assert.Equal(t, UsernameKey("clinic"), UsernameKey("ｃｌｉｎｉｃ"))
	assert.NotEqual(t, UsernameKey("clinic"), UsernameKey("clinic2"))
}
