package token

import (
	"errors"
	"fmt"
)

// Validation errors. All are resolved locally, before any network call,
// and are recoverable by editing the form and resubmitting.
var (
	// ErrNoContract means no well-formed contract address is configured.
	ErrNoContract = errors.New("no valid contract address set")

	// ErrNoWallet means no signing wallet is connected.
	ErrNoWallet = errors.New("no wallet connected")

	// ErrInvalidAmount means the amount field is empty, malformed, negative,
	// or carries more fractional digits than the token's decimals.
	ErrInvalidAmount = errors.New("invalid amount")
)

// ErrUserRejected is returned by the gateway when the user cancels a
// submission at the confirmation step.
var ErrUserRejected = errors.New("submission rejected by user")

// InvalidAddressError reports which required address field is missing or
// malformed.
type InvalidAddressError struct {
	Field Field
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid or missing %s address", e.Field)
}

// SubmissionError wraps an RPC or signing failure during broadcast.
// The underlying message is surfaced verbatim.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return "submission failed: " + e.Message
}

// ReceiptError reports a transaction that was mined but reverted.
type ReceiptError struct {
	Hash    string
	Message string
}

func (e *ReceiptError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.Hash, e.Message)
}
