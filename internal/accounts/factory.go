// server/internal/accounts/factory.go
package accounts

import (
	"context"
	"errors"
	"fmt"

	"facility-accounts-api-server/internal/auth"
	"facility-accounts-api-server/internal/models"
	"facility-accounts-api-server/internal/store"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Store persists new accounts. Insert must check uniqueness and insert atomically.
type Store interface {
	Insert(ctx context.Context, account *models.Account) (*models.Account, error)
}

// Hasher turns a password into a credential that cannot be reversed.
type Hasher interface {
	Hash(password string) (string, error)
}

// Factory validates input and builds new accounts. It holds no state of its
// own and can be shared between requests.
type Factory struct {
	store  Store
	hasher Hasher
	logger *zap.Logger
}

func NewFactory(s Store, h Hasher, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{store: s, hasher: h, logger: logger}
}

// CreateAccount validates the input, hashes the password and persists a new
// account. An empty password leaves the account without a usable credential.
func (f *Factory) CreateAccount(ctx context.Context, username, password string, fields models.Fields) (*models.Account, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, invalid(store.FieldUsername, "required", "username required")
	}

	fields.Email = normalizeEmail(fields.Email)
	fields.PhoneNum2 = blankToNil(fields.PhoneNum2)
	fields.Address = blankToNil(fields.Address)

	if err := validateInput(accountInput{
		Username:     username,
		Email:        fields.Email,
		FacilityName: fields.FacilityName,
		PhoneNum1:    fields.PhoneNum1,
		PhoneNum2:    fields.PhoneNum2,
	}); err != nil {
		return nil, err
	}

	credential, err := f.credential(password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:           username,
		UsernameKey:        store.UsernameKey(username),
		Email:              fields.Email,
		FacilityName:       fields.FacilityName,
		PhoneNum1:          fields.PhoneNum1,
		PhoneNum2:          fields.PhoneNum2,
		Address:            fields.Address,
		IsStaff:            flag(fields.IsStaff, false),
		IsSuperuser:        flag(fields.IsSuperuser, false),
		IsActive:           flag(fields.IsActive, true),
		PasswordCredential: credential,
	}

	saved, err := f.store.Insert(ctx, account)
	if err != nil {
		var uerr *store.UniquenessError
		if errors.As(err, &uerr) {
			f.logger.Info("account rejected: duplicate value",
				zap.String("username", username),
				zap.String("field", uerr.Field))
		}
		return nil, err
	}

	f.logger.Info("account created",
		zap.String("id", saved.ID),
		zap.String("username", saved.Username),
		zap.Bool("is_staff", saved.IsStaff),
		zap.Bool("is_superuser", saved.IsSuperuser),
		zap.Bool("usable_password", saved.HasUsablePassword()))
	return saved, nil
}

// CreateSuperuser creates an account with both admin flags set. Supplying
// either flag as false is an error, never silently overridden.
func (f *Factory) CreateSuperuser(ctx context.Context, username, password string, fields models.Fields) (*models.Account, error) {
	if fields.IsStaff == nil {
		fields.IsStaff = boolPtr(true)
	}
	if fields.IsSuperuser == nil {
		fields.IsSuperuser = boolPtr(true)
	}

	if !*fields.IsStaff {
		return nil, invalid("is_staff", "superuser", "superuser must have is_staff=True")
	}
	if !*fields.IsSuperuser {
		return nil, invalid("is_superuser", "superuser", "superuser must have is_superuser=True")
	}

	return f.CreateAccount(ctx, username, password, fields)
}

func (f *Factory) credential(password string) (string, error) {
	if password == "" {
		return auth.UnusableCredential(), nil
	}
	hash, err := f.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", invalid("password", "max", "password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// NormalizeUsername applies NFKC so visually identical identifiers compare equal.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(username)
}

func flag(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func boolPtr(b bool) *bool {
	return &b
}
