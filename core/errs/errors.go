// Package errs holds the failure kinds shared by the stores, repositories and workflow services.
// Every typed error unwraps to one of the sentinels so callers can branch with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCorruptRecord     = errors.New("corrupt record")
	ErrIOFailure         = errors.New("io failure")
	ErrInvalidInput      = errors.New("invalid input")
)

// Kind classifies an error for callers that only care about the category.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindDuplicateKey
	KindInvalidState
	KindInsufficientStock
	KindCorruptRecord
	KindIOFailure
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindInvalidState:
		return "invalid_state"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindCorruptRecord:
		return "corrupt_record"
	case KindIOFailure:
		return "io_failure"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrNotFound, KindNotFound},
	{ErrDuplicateKey, KindDuplicateKey},
	{ErrInvalidState, KindInvalidState},
	{ErrInsufficientStock, KindInsufficientStock},
	{ErrCorruptRecord, KindCorruptRecord},
	{ErrIOFailure, KindIOFailure},
	{ErrInvalidInput, KindInvalidInput},
}

// KindOf returns the kind of the first sentinel found in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindUnknown
}

type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

type DuplicateKeyError struct {
	Entity string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

func DuplicateKey(entity, key string) error {
	return &DuplicateKeyError{Entity: entity, Key: key}
}

// InvalidStateError reports a transition attempted from a status that forbids it.
type InvalidStateError struct {
	Entity string
	Key    string
	From   string
	Action string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s: cannot %s from status %s", e.Entity, e.Key, e.Action, e.From)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

func InvalidState(entity, key, from, action string) error {
	return &InvalidStateError{Entity: entity, Key: key, From: from, Action: action}
}

type InsufficientStockError struct {
	ItemCode string
	Current  int
	Delta    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("item %s: insufficient stock (current %d, change %d)", e.ItemCode, e.Current, e.Delta)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// CorruptRecordError describes one persisted line that failed to parse.
type CorruptRecordError struct {
	Path string
	Line int
	Err  error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("%s:%d: corrupt record: %v", e.Path, e.Line, e.Err)
}

func (e *CorruptRecordError) Unwrap() []error { return []error{ErrCorruptRecord, e.Err} }

// IOError wraps an underlying file operation failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIOFailure, e.Err} }

func IO(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
