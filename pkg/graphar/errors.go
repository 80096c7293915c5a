package graphar

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownTable          = errors.New("unknown table")
	ErrUnsupportedType       = errors.New("unsupported property type")
	ErrUnsupportedColumnType = errors.New("unsupported column type")
	ErrUnknownColumn         = errors.New("unknown column")
	ErrDuplicateColumn       = errors.New("duplicate column")
	ErrInvalidOption         = errors.New("invalid option")
	ErrBatchTooSmall         = errors.New("output batch smaller than the scan batch size")
)

// BindError is returned when a call cannot be bound. No bind data exists when
// it is returned.
type BindError struct {
	Table  string
	Detail string
	Err    error
}

func (e *BindError) Error() string {
	msg := "graphar bind"
	if e.Table != "" {
		msg += " '" + e.Table + "'"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// ScanError aborts the batch being filled. Execution matches the execution id
// logged when the scan started.
type ScanError struct {
	Execution uuid.UUID
	Table     string
	Row       int64
	Column    string
	Err       error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("graphar scan '%s' (execution %s): row %d, column '%s': %v",
		e.Table, e.Execution, e.Row, e.Column, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
