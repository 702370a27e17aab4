package auth

import "unicode/utf16"

// ValidateLogin checks the login form before Login is attempted.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}
	return nil
}

// ValidateSignup checks the signup form before Signup is attempted.
func ValidateSignup(name, email, password, confirm string) error {
	if name == "" || email == "" || password == "" || confirm == "" {
		return ErrMissingFields
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if passwordLength(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// passwordLength counts UTF-16 code units, the unit the signup form has
// always measured passwords in.
func passwordLength(password string) int {
	return len(utf16.Encode([]rune(password)))
}
