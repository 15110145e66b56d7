// server/internal/store/store.go
package store

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when no account matches a lookup.
var ErrNotFound = errors.New("store: account not found")

// UniquenessError reports a collision on one of the unique account fields.
type UniquenessError struct {
	Field string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("an account with this %s already exists", e.Field)
}

// Unique field names, as they appear in the persisted record.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldFacilityName = "facility_name"
)

// UsernameKey maps a username to the key uniqueness and lookups are done on.
// Usernames that differ only by case or by Unicode compatibility form share a key.
func UsernameKey(username string) string {
	return cases.Fold().String(norm.NFKC.String(username))
}
