// Package apperrors defines the error kinds the sync pipeline distinguishes.
// All of them are scoped to a single call, record, or delivery; the caller
// decides whether a failure is fatal to the run.
package apperrors

import (
	"fmt"
)

// ProviderError reports an unavailable or misbehaving data provider:
// transport failure, timeout, non-success status, or an undecodable body.
type ProviderError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider unavailable: %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("provider unavailable: %s: %v", e.Endpoint, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StoreError reports a persistence read or write failure, scoped to one
// record or one listing operation.
type StoreError struct {
	Op       string
	RecordID string
	Err      error
}

func (e *StoreError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("store unavailable: %s %q: %v", e.Op, e.RecordID, e.Err)
	}
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// DeliveryError reports a failed webhook notification.
type DeliveryError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook delivery to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("webhook delivery to %s failed: %v", e.URL, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// MalformedRecordError reports a raw record that cannot be transformed,
// scoped to that one record.
type MalformedRecordError struct {
	LaunchID string
	Field    string
}

func (e *MalformedRecordError) Error() string {
	if e.LaunchID == "" {
		return fmt.Sprintf("malformed launch record: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed launch record %q: missing %s", e.LaunchID, e.Field)
}
