package seating

import "errors"

var (
	ErrNilParty            = errors.New("nil_party")
	ErrInvalidPartySize    = errors.New("invalid_party_size")
	ErrPartyTooLarge       = errors.New("party_too_large")
	ErrPartyAlreadyArrived = errors.New("party_already_arrived")
	ErrPartyDeparted       = errors.New("party_departed")
	ErrNoTables            = errors.New("no_tables")
	ErrInvalidCapacity     = errors.New("invalid_table_capacity")

	// ErrInvariantViolation marks a seat or vacate call that would push a
	// table outside 0 <= occupied <= capacity. State is left untouched.
	ErrInvariantViolation = errors.New("seating_invariant_violation")
)
