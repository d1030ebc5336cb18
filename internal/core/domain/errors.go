package domain

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDonationNotFound     = errors.New("donation not found")
	ErrDuplicateDonation    = errors.New("donation already exists")
	ErrInconsistentDonation = errors.New("inconsistent donation")
	ErrForbidden            = errors.New("access forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
