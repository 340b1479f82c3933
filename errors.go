/*
 * errors.go, part of freud.
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package freud

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is the kind of all the errors caused by an invalid histogram geometry
// or invalid options. Use errors.Is(err, ErrConfig) to detect them.
var ErrConfig = errors.New("invalid configuration")

// ErrCompute is the kind of the errors returned when a collaborator (a cell list, an RDF)
// fails during an accumulation.
var ErrCompute = errors.New("computation failed")

// Error is the error type returned by all the packages in freud.
// Besides the message, it carries a "decoration": the list of functions
// the error went through, so the origin of the problem is easier to find.
type Error struct {
	message  string
	deco     []string
	critical bool
	kind     error
}

// NewError returns a new error of the given kind (ErrConfig or ErrCompute), created by caller.
func NewError(kind error, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), deco: []string{caller}, critical: true, kind: kind}
}

// ConfigError returns a new configuration error created by the function caller.
func ConfigError(caller, format string, args ...interface{}) *Error {
	return NewError(ErrConfig, caller, format, args...)
}

// Error returns a string with an error message, including the decoration.
func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return fmt.Sprintf("%s: %s", strings.Join(err.deco, ": "), err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		//the decoration is a call stack, the outermost function goes first.
		err.deco = append([]string{dec}, err.deco...)
	}
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

// Unwrap returns the kind of the error, so errors.Is works.
func (err *Error) Unwrap() error { return err.kind }

// ErrDecorate decorates err with the caller's name before returning it, if err
// implements Decorator. Other errors are wrapped into a freud *Error of kind ErrCompute.
// A nil error gives nil.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
		return err
	}
	return &Error{message: err.Error(), deco: []string{caller}, critical: true, kind: fmt.Errorf("%w: %w", ErrCompute, err)}
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// freud panics only when the caller breaks the contract of a function (i.e. gives
// slices of mismatched length). For other errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape     = PanicMsg("freud: Mismatched lengths of the input data")
	ErrNilPoints = PanicMsg("freud: Nil set of points")
	ErrWorker    = PanicMsg("freud: Worker index out of the range of the pool")
)
