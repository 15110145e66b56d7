// server/internal/models/account.go
package models

import "time"

// Identity is the part of an account an authentication backend relies on.
type Identity interface {
	Identifier() string
	LoginName() string
	Credential() string
}

// Privileges exposes the authorization flags of an account.
type Privileges interface {
	Staff() bool
	Superuser() bool
	Enabled() bool
}

// Account matches the document stored in the "accounts" collection.
type Account struct {
	ID                 string    `bson:"_id" json:"id"`
	Username           string    `bson:"username" json:"username"`
	UsernameKey        string    `bson:"username_key" json:"-"`
	Email              string    `bson:"email" json:"email"`
	FacilityName       string    `bson:"facility_name" json:"facility_name"`
	PhoneNum1          string    `bson:"phone_num1" json:"phone_num1"`
	PhoneNum2          *string   `bson:"phone_num2" json:"phone_num2"`
	Address            *string   `bson:"address" json:"address"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	IsStaff            bool      `bson:"is_staff" json:"is_staff"`
	IsSuperuser        bool      `bson:"is_superuser" json:"is_superuser"`
	IsActive           bool      `bson:"is_active" json:"is_active"`
	PasswordCredential string    `bson:"password_credential" json:"-"`
}

func (a *Account) Identifier() string { return a.ID }
func (a *Account) LoginName() string  { return a.Username }
func (a *Account) Credential() string { return a.PasswordCredential }

func (a *Account) Staff() bool     { return a.IsStaff }
func (a *Account) Superuser() bool { return a.IsSuperuser }
func (a *Account) Enabled() bool   { return a.IsActive }

// HasUsablePassword reports whether a password was set at creation.
// Unusable credentials start with "!".
func (a *Account) HasUsablePassword() bool {
	return a.PasswordCredential != "" && a.PasswordCredential[0] != '!'
}

// HasPerm follows the permission rule of the admin site: an active superuser
// holds every permission, anyone else holds none granted here.
func (a *Account) HasPerm(_ string) bool {
	return a.IsActive && a.IsSuperuser
}

// String returns the email, which is how accounts are displayed.
func (a *Account) String() string {
	return a.Email
}

// Fields are the attributes supplied alongside username and password when an
// account is created. Nil flag pointers mean "not supplied".
type Fields struct {
	Email        string
	FacilityName string
	PhoneNum1    string
	PhoneNum2    *string
	Address      *string
	IsStaff      *bool
	IsSuperuser  *bool
	IsActive     *bool
}
