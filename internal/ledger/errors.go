package ledger

import (
	"errors"

	"github.com/mmynk/splitledger/internal/calculator"
)

var (
	// ErrUnknownPerson is returned when a payer or beneficiary is not registered.
	ErrUnknownPerson = errors.New("unknown person")
	// ErrDuplicateName is returned when registering a name that already exists.
	ErrDuplicateName = errors.New("name already registered")
	// ErrInvalidName is returned when registering a blank name.
	ErrInvalidName = errors.New("person name must not be blank")
	// ErrInvalidSplit is returned for missing, malformed or inconsistent split data.
	ErrInvalidSplit = calculator.ErrInvalidSplit
	// ErrNoSettlement is returned when settling a pair with nothing planned between them.
	ErrNoSettlement = errors.New("no settlement planned between these people")
	// ErrPersistence wraps failures reported by the store.
	ErrPersistence = errors.New("persistence failure")
	// ErrClosed is returned by operations on a closed ledger.
	ErrClosed = errors.New("ledger is closed")
)
