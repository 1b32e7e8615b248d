package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrNameRequired         = errors.New("name is required")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrInvalidCapital       = errors.New("capital must not be negative")
	ErrInvalidPercentage    = errors.New("percentage out of range")
	ErrInvalidEffectiveDays = errors.New("effective days must not be negative")
	ErrInvalidDate          = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDayStatus     = errors.New("invalid day status")
	ErrInvalidCategory      = errors.New("invalid trade category")
	ErrInvalidSubCategory   = errors.New("invalid trade sub category")
	ErrInvalidStrategy      = errors.New("invalid option strategy")
	ErrTickerTooLong        = errors.New("ticker exceeds maximum length")
	ErrSyncDisabled         = errors.New("sync is disabled or not configured")
	ErrSyncInProgress       = errors.New("sync already in progress")
	ErrMalformedSnapshot    = errors.New("malformed remote snapshot")
)

// Validation constants
const (
	MaxProfileNameLength = 255
	MaxTickerLength      = 16
)
