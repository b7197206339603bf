package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegistrationInput carries the raw registration form fields.
type RegistrationInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Registration checks the registration fields and returns the ordered
// message list. Uniqueness against the users table is checked
// separately by the service.
func Registration(in RegistrationInput) Errors {
	var errs Errors

	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		errs = append(errs, "Username is required")
	case len(username) < minUsernameLen:
		errs = append(errs, "Username must be at least 3 characters")
	case len(username) > maxUsernameLen:
		errs = append(errs, "Username must be less than 50 characters")
	case !usernameRe.MatchString(username):
		errs = append(errs, "Username can only contain letters, numbers, and underscores")
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, "Email is required")
	} else if !ValidEmail(email) {
		errs = append(errs, "Invalid email format")
	}

	if in.Password == "" {
		errs = append(errs, "Password is required")
	} else if len(in.Password) < minPasswordLen {
		errs = append(errs, "Password must be at least 6 characters")
	}

	if in.Password != in.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}

	return errs
}

// PasswordChange checks the change-password form fields.
func PasswordChange(current, new_, confirm string) Errors {
	var errs Errors

	if current == "" {
		errs = append(errs, "Current password is required")
	}

	if new_ == "" {
		errs = append(errs, "New password is required")
	} else if len(new_) < minPasswordLen {
		errs = append(errs, "New password must be at least 6 characters")
	}

	if new_ != confirm {
		errs = append(errs, "New passwords do not match")
	}

	return errs
}

// Email checks a standalone email field, as used by the profile flow.
func Email(email string) Errors {
	var errs Errors

	email = strings.TrimSpace(email)
	if email == "" {
		errs = append(errs, "Email is required")
	} else if !ValidEmail(email) {
		errs = append(errs, "Invalid email format")
	}

	return errs
}

// ValidEmail reports whether s parses as a bare RFC 5322 address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
