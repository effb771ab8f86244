package booking

import "errors"

var (
	ErrInvalidTransition   = errors.New("action not legal for current status and role")
	ErrAlreadyBooked       = errors.New("another entry is already confirmed for this artist and date")
	ErrNotFound            = errors.New("date entry not found")
	ErrInvariantViolation  = errors.New("negotiation state invariant violated")
	ErrValidation          = errors.New("validation error")
	ErrForbidden           = errors.New("caller is not a party to this negotiation")
	ErrConfirmedDealLocked = errors.New("deal terms are immutable once confirmed")
)
