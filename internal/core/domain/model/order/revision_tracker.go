package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// maxRevisionReasonLength bounds the free-text reason of a revision request.
const maxRevisionReasonLength = 500

// ErrRevisionQuotaExhausted is the sentinel wrapped by
// RevisionQuotaExhaustedError. Exhaustion is the designed hard limit of the
// package, a terminal business outcome rather than a bug.
var ErrRevisionQuotaExhausted = errors.New("revision quota exhausted")

// RevisionQuotaExhaustedError reports that every revision included in the
// package snapshot has already been used.
type RevisionQuotaExhaustedError struct {
	Quota int
}

func (e *RevisionQuotaExhaustedError) Error() string {
	return fmt.Sprintf("%s: all %d revisions have been used", ErrRevisionQuotaExhausted, e.Quota)
}

func (e *RevisionQuotaExhaustedError) Unwrap() error {
	return ErrRevisionQuotaExhausted
}

// RevisionEntry records a single buyer revision request and, once the seller
// redelivers, its fulfillment. Entries are never removed.
type RevisionEntry struct {
	requestedAt time.Time
	reason      string
	deliveredAt *time.Time
	isCompleted bool
}

// RestoreRevisionEntry reconstructs an entry from persistence.
func RestoreRevisionEntry(requestedAt time.Time, reason string, deliveredAt *time.Time, isCompleted bool) RevisionEntry {
	return RevisionEntry{
		requestedAt: requestedAt,
		reason:      reason,
		deliveredAt: deliveredAt,
		isCompleted: isCompleted,
	}
}

// RequestedAt returns when the revision was requested.
func (e RevisionEntry) RequestedAt() time.Time {
	return e.requestedAt
}

// Reason returns the buyer's reason for the revision.
func (e RevisionEntry) Reason() string {
	return e.reason
}

// DeliveredAt returns when the revision was delivered, or nil while open.
func (e RevisionEntry) DeliveredAt() *time.Time {
	return e.deliveredAt
}

// IsCompleted reports whether the revision has been delivered.
func (e RevisionEntry) IsCompleted() bool {
	return e.isCompleted
}

// RevisionTracker enforces the package revision quota and keeps the ordered
// history of revision requests. The number of revisions used always equals
// the number of entries ever appended.
type RevisionTracker struct {
	quota   int
	entries []RevisionEntry
}

// NewRevisionTracker creates a tracker for a fresh order with no revisions used.
func NewRevisionTracker(quota int) RevisionTracker {
	return RevisionTracker{quota: quota}
}

// RestoreRevisionTracker reconstructs a tracker from persistence.
func RestoreRevisionTracker(quota int, entries []RevisionEntry) RevisionTracker {
	tracker := RevisionTracker{quota: quota, entries: make([]RevisionEntry, len(entries))}
	copy(tracker.entries, entries)
	return tracker
}

// Consume appends a revision entry for the given reason and counts it
// against the quota. Fails with RevisionQuotaExhaustedError when the quota
// is already used up, leaving the tracker unchanged rather than silently
// capping.
func (t *RevisionTracker) Consume(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("revision reason")
	}
	if len(reason) > maxRevisionReasonLength {
		return errs.NewValueIsOutOfRangeError("revision reason length", len(reason), 1, maxRevisionReasonLength)
	}
	if t.Used() >= t.quota {
		return &RevisionQuotaExhaustedError{Quota: t.quota}
	}

	t.entries = append(t.entries, RevisionEntry{
		requestedAt: now,
		reason:      reason,
	})
	return nil
}

// Fulfill marks the most recent open entry as delivered. Fails with an
// ObjectNotFoundError when no open entry exists.
func (t *RevisionTracker) Fulfill(now time.Time) error {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if !t.entries[i].isCompleted {
			deliveredAt := now
			t.entries[i].deliveredAt = &deliveredAt
			t.entries[i].isCompleted = true
			return nil
		}
	}
	return errs.NewObjectNotFoundError("revision", "open entry")
}

// Quota returns the revision quota from the package snapshot.
func (t RevisionTracker) Quota() int {
	return t.quota
}

// Used returns the number of revisions requested so far.
func (t RevisionTracker) Used() int {
	return len(t.entries)
}

// Remaining returns how many revisions the buyer can still request.
func (t RevisionTracker) Remaining() int {
	return t.quota - t.Used()
}

// HasOpenEntry reports whether a requested revision is awaiting delivery.
func (t RevisionTracker) HasOpenEntry() bool {
	for _, entry := range t.entries {
		if !entry.isCompleted {
			return true
		}
	}
	return false
}

// Entries returns a copy of the ordered revision history.
func (t RevisionTracker) Entries() []RevisionEntry {
	entries := make([]RevisionEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}
