package model

import (
	"fmt"
	"strings"
)

// DecodeError reports an unreadable or unsupported source file. Fatal to
// the run.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NoDataError reports an empty sheet. Fatal to the run, no partial state.
type NoDataError struct {
	Sheet string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("sheet %q contains no data rows", e.Sheet)
}

// IncompleteMappingError is recoverable: the run stays in the mapping
// state until the missing required fields are mapped.
type IncompleteMappingError struct {
	Missing int
}

func (e *IncompleteMappingError) Error() string {
	return fmt.Sprintf("mapping incomplete: %d required field(s) unmapped", e.Missing)
}

// UnknownTransformError is a configuration bug: a mapping references a
// transform id the catalog never registered.
type UnknownTransformError struct {
	ID    string
	Field string
}

func (e *UnknownTransformError) Error() string {
	return fmt.Sprintf("unknown transform %q for field %s", e.ID, e.Field)
}

// ValidationError collects per-row data-quality failures. The commit is
// refused as a whole; the messages are surfaced verbatim.
type ValidationError struct {
	RowErrors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d row(s) failed validation: %s", len(e.RowErrors), strings.Join(e.RowErrors, "; "))
}

// StorageCommitError wraps a failure of the storage collaborator during
// commit. Fatal to the run.
type StorageCommitError struct {
	Err error
}

func (e *StorageCommitError) Error() string {
	return fmt.Sprintf("storage commit failed: %v", e.Err)
}

func (e *StorageCommitError) Unwrap() error { return e.Err }
