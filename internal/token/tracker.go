package token

import (
	"context"
	"time"

	"github.com/MaksRe/solidity-erc20-playground/internal/chain"
)

// TxStatus is the lifecycle state of a submitted transaction.
type TxStatus string

const (
	StatusNone      TxStatus = "none"
	StatusPending   TxStatus = "pending"
	StatusConfirmed TxStatus = "confirmed"
	StatusFailed    TxStatus = "failed"
)

// TransactionRecord tracks one submitted call from acceptance to
// resolution. Confirmed and failed are terminal; a new submission creates
// a fresh record that supersedes this one.
type TransactionRecord struct {
	Hash         string
	Status       TxStatus
	ErrorMessage string

	gen uint64
}

// Terminal reports whether the record reached a final state.
func (r *TransactionRecord) Terminal() bool {
	return r.Status == StatusConfirmed || r.Status == StatusFailed
}

// Outcome is the observed result of a mined transaction.
type Outcome struct {
	Success bool
	Reason  string // revert reason or error text when Success is false
}

// ReceiptWaiter blocks until a transaction is mined. *chain.Client
// satisfies it.
type ReceiptWaiter interface {
	WaitForReceipt(ctx context.Context, hash string, interval time.Duration) (*chain.Receipt, error)
}

// Tracker owns the single active TransactionRecord per session and drives
// its state machine:
//
//	none → pending → confirmed | failed
//
// On the pending→confirmed transition it invalidates the write-dependent
// read queries (total supply, balance, allowance) through the cache. A
// superseded record's late resolution is ignored; the in-flight network
// wait is not cancelled, it just lands on a stale record.
type Tracker struct {
	cache  *Cache
	active *TransactionRecord
	gen    uint64
}

// NewTracker creates a tracker that refreshes reads through cache on
// confirmation.
func NewTracker(cache *Cache) *Tracker {
	return &Tracker{cache: cache}
}

// Begin records a newly accepted submission and returns its pending
// record, superseding any previous one.
func (t *Tracker) Begin(hash string) *TransactionRecord {
	t.gen++
	t.active = &TransactionRecord{
		Hash:   hash,
		Status: StatusPending,
		gen:    t.gen,
	}
	return t.active
}

// Active returns the current record, or nil before the first submission.
func (t *Tracker) Active() *TransactionRecord {
	return t.active
}

// Pending reports whether a submission is still awaiting its receipt. The
// UI must refuse new submissions while this is true.
func (t *Tracker) Pending() bool {
	return t.active != nil && t.active.Status == StatusPending
}

// Apply performs the state transition for an observed outcome without
// touching the cache, and reports whether rec transitioned to confirmed.
// Stale records (superseded by a newer submission) and already-terminal
// records are ignored, so an outcome is consumed at most once per record.
//
// Callers that must not block (the console's event loop) use Apply and
// schedule the refetch themselves; Resolve bundles both for the blocking
// command path.
func (t *Tracker) Apply(rec *TransactionRecord, outcome Outcome) bool {
	if rec == nil || rec != t.active || rec.gen != t.gen {
		return false
	}
	if rec.Status != StatusPending {
		return false
	}

	if outcome.Success {
		rec.Status = StatusConfirmed
		return true
	}
	rec.Status = StatusFailed
	rec.ErrorMessage = outcome.Reason
	return false
}

// Resolve applies an observed outcome to rec and, on the pending→confirmed
// transition, refetches the write-dependent reads through the cache.
func (t *Tracker) Resolve(rec *TransactionRecord, outcome Outcome) {
	if t.Apply(rec, outcome) && t.cache != nil {
		t.cache.InvalidateAfterConfirm()
	}
}

// Await blocks until rec's transaction is mined, then resolves it. Used
// by the one-shot commands; the interactive console delivers outcomes
// through its own event loop instead.
func (t *Tracker) Await(ctx context.Context, waiter ReceiptWaiter, rec *TransactionRecord) error {
	receipt, err := waiter.WaitForReceipt(ctx, rec.Hash, 0)
	if err != nil {
		t.Resolve(rec, Outcome{Reason: err.Error()})
		return err
	}
	if !receipt.Success() {
		outcome := Outcome{Reason: "transaction reverted"}
		t.Resolve(rec, outcome)
		return &ReceiptError{Hash: rec.Hash, Message: outcome.Reason}
	}
	t.Resolve(rec, Outcome{Success: true})
	return nil
}
