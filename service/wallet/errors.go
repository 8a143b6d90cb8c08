package wallet

import "errors"

var (
	// ErrInvalidPublicKey is returned when an identity is neither an existing
	// path nor a base58 public key.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrIdentityReadFailed is returned when a keypair file exists but cannot
	// be decoded.
	ErrIdentityReadFailed = errors.New("failed to read keypair")

	// ErrWriteFailed is returned when a keypair file cannot be written.
	ErrWriteFailed = errors.New("failed to write keypair")

	// ErrInvalidAmount is returned for negative, NaN or infinite amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when an amount does not fit in uint64 lamports.
	ErrAmountOverflow = errors.New("amount overflows lamports")
)
