package wifihelper

import (
	"errors"
	"strings"
)

var (
	ErrNoActiveConnection      = errors.New("no active connection")
	ErrPlatformOperationFailed = errors.New("platform operation failed")
)

type Op string

// PlatformError is returned whenever the host rejects a request
// or cannot be reached. It always matches ErrPlatformOperationFailed.
type PlatformError struct {
	Op  Op
	Err error // nil when the platform simply said no
}

func platformError(op Op, err error) error {
	return &PlatformError{Op: op, Err: err}
}

func (e *PlatformError) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}

	b.WriteString(ErrPlatformOperationFailed.Error())

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *PlatformError) Is(target error) bool {
	return target == ErrPlatformOperationFailed
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}
