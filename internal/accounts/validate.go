// server/internal/accounts/validate.go
package accounts

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PhonePattern is the only accepted phone format: "0093" followed by exactly 9 digits.
var PhonePattern = regexp.MustCompile(`^0093[0-9]{9}$`)

const (
	MaxUsernameLength     = 150
	MaxFacilityNameLength = 250
	PhoneLength           = 13
)

var validate = newValidator()

// accountInput mirrors the column constraints of the accounts collection.
type accountInput struct {
	Username     string  `json:"username" validate:"required,max=150"`
	Email        string  `json:"email" validate:"required,email"`
	FacilityName string  `json:"facility_name" validate:"required,max=250"`
	PhoneNum1    string  `json:"phone_num1" validate:"required,len=13,phone0093"`
	PhoneNum2    *string `json:"phone_num2" validate:"omitempty,len=13,phone0093"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Length is enforced separately by len=13; the pattern is anchored at both ends as well.
	_ = v.RegisterValidation("phone0093", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	})
	return v
}

func validateInput(in accountInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	return invalid(first.Field(), first.Tag(), errorMessage(first))
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " required"
	case "email":
		return "enter a valid email address"
	case "max":
		return "ensure this value has at most " + err.Param() + " characters"
	case "len":
		return "ensure this value has exactly " + err.Param() + " characters"
	case "phone0093":
		return "phone number must be 0093 followed by 9 digits"
	default:
		return "invalid value"
	}
}

// normalizeEmail lower-cases the domain part and leaves the local part untouched.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// blankToNil treats an empty optional value as absent.
func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
