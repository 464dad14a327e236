// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrControlCrashed reports that the controller terminated before
// replying. The controller is singleton state; once it is gone, every
// synchronous operation fails with this error until [Session.Reset]
// installs a fresh controller. Operations are never retried
// automatically.
var ErrControlCrashed = errors.New("control process crashed")

// OpError is the failure of one facade operation. It carries the
// operation name and its arguments for diagnostics and wraps the
// cause, so errors.Is/As see through it (e.g. to [ErrControlCrashed]
// or [proc.NotFoundError]).
type OpError struct {
	Op   string
	Args []any
	Err  error
}

func (e *OpError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("trace: %s: %v", e.Op, e.Err)
	}
	arguments := make([]string, len(e.Args))
	for i, argument := range e.Args {
		arguments[i] = fmt.Sprintf("%v", argument)
	}
	return fmt.Sprintf("trace: %s(%s): %v", e.Op, strings.Join(arguments, ", "), e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// ArgumentError reports malformed caller input, detected at
// normalization time before any runtime interaction.
type ArgumentError struct {
	Input  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %v: %s", e.Input, e.Reason)
}

// IsArgument reports whether err is (or wraps) an ArgumentError.
func IsArgument(err error) bool {
	var argumentError *ArgumentError
	return errors.As(err, &argumentError)
}

// opError wraps err for the named operation, or returns nil when
// there is nothing to wrap.
func opError(op string, err error, args ...any) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Args: args, Err: err}
}
