package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/martijn/usersvc/internal/core/domain"
)

const (
	MsgAllFieldsRequired = "All fields are required"
	MsgInvalidEmail      = "Invalid email format"
	MsgInvalidAge        = "Age must be a non-negative integer"
)

// maxAge bounds stored ages to what fits every store's integer column.
const maxAge = math.MaxInt32

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// UserInput is a create or update payload as received. A nil field was absent.
type UserInput struct {
	Username *string
	Email    *string
	Password *string
	// Age is the decimal text of the age as sent, number or string alike.
	Age *string
}

// ValidateUserInput checks that all four business fields are present, then
// their shape. Age 0 counts as present.
func ValidateUserInput(in UserInput) (domain.UserFields, error) {
	if isBlank(in.Username) || isBlank(in.Email) || isBlank(in.Password) || isBlank(in.Age) {
		return domain.UserFields{}, domain.NewValidationError(MsgAllFieldsRequired)
	}

	if !emailPattern.MatchString(*in.Email) {
		return domain.UserFields{}, domain.NewValidationError(MsgInvalidEmail)
	}

	age, ok := parseAge(*in.Age)
	if !ok {
		return domain.UserFields{}, domain.NewValidationError(MsgInvalidAge)
	}

	return domain.UserFields{
		Username: *in.Username,
		Email:    *in.Email,
		Password: *in.Password,
		Age:      age,
	}, nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// parseAge accepts integral values written either way, e.g. "30" or "30.0".
func parseAge(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 || f > maxAge || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
