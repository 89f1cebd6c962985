package core

import "fmt"

// ParseError reports a date string that does not match the expected layout.
type ParseError struct {
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date %q (want layout %q): %v", e.Value, e.Layout, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError reports a required property absent from a fetched record.
type MissingFieldError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("record %s: missing required field %q", e.RecordID, e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NetworkError wraps a failed or timed out call to a remote service.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
