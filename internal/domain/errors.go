package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidRate        = errors.New("rate must be greater than zero")
	ErrInvalidFeeSchedule = errors.New("invalid fee schedule")
	ErrInvalidDirection   = errors.New("unknown direction")
	ErrConfigMissing      = errors.New("rates are not configured yet")
	ErrNoMatchingFeeRange = errors.New("no fee range matches amount")
	ErrAccessDenied       = errors.New("access denied")
	ErrFeeExceedsPayout   = errors.New("fee leaves nothing to pay out")
)
