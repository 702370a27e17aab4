package auth

import "errors"

// The error texts are shown to the user as-is.
var (
	ErrMissingFields    = errors.New("Please fill in all fields.")
	ErrPasswordMismatch = errors.New("Passwords do not match.")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters.")
	ErrAccountNotFound  = errors.New("Account not found. Please sign up first.")
	ErrAccountExists    = errors.New("An account with this email already exists.")
)
