package floor

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrPartyNotFound   = errors.New("party_not_found")
	ErrPartyTooLarge   = errors.New("party_too_large")
	ErrTableNotFound   = errors.New("table_not_found")
	ErrJournalDisabled = errors.New("journal_disabled")
	ErrEventNotFound   = errors.New("event_not_found")
)
