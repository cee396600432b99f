/*
 * errors.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package atomstruct

import (
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes the conditions the structure API can signal.
type Kind int

const (
	KindUnknown          Kind = iota
	KindForeignEntity         //the atom/residue/coordset doesn't belong to the structure
	KindAlreadyConnected      //a bond between the two atoms exists already
	KindTypeMismatch          //e.g. a pseudobond group exists with another storage kind
	KindOutOfRange            //an index or insertion point is not valid
	KindInvalidArgument
	KindSerialization //malformed or truncated session data
	KindVersionTooNew //session written by a newer version
	KindAssocFailure  //a sequence couldn't be associated within the error budget
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindForeignEntity:    "foreign entity",
	KindAlreadyConnected: "already connected",
	KindTypeMismatch:     "type mismatch",
	KindOutOfRange:       "out of range",
	KindInvalidArgument:  "invalid argument",
	KindSerialization:    "serialization",
	KindVersionTooNew:    "version too new",
	KindAssocFailure:     "association failure",
}

func (K Kind) String() string {
	if s, ok := kindNames[K]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(K))
}

// Error is the error type returned by atomstruct. Each function that passes
// an Error along adds its name to the decoration, so the chain of callers can
// be reconstructed.
type Error struct {
	message  string
	deco     []string
	critical bool
	kind     Kind
	err      error //wrapped cause, if any
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.kind.String())
	b.WriteString(": ")
	b.WriteString(err.message)
	if len(err.deco) > 0 {
		b.WriteString(" (in ")
		b.WriteString(strings.Join(err.deco, " < "))
		b.WriteString(")")
	}
	if err.err != nil {
		b.WriteString(": ")
		b.WriteString(err.err.Error())
	}
	return b.String()
}

// Decorate adds the name of a caller to the error and returns the decoration.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns true for errors after which the involved objects can't be
// trusted, such as a failed session restore.
func (err *Error) Critical() bool { return err.critical }

// Kind returns the condition signaled by the error.
func (err *Error) Kind() Kind { return err.kind }

func (err *Error) Unwrap() error { return err.err }

func newError(kind Kind, caller string, format string, args ...any) *Error {
	e := &Error{message: fmt.Sprintf(format, args...), kind: kind}
	e.critical = kind == KindSerialization || kind == KindVersionTooNew
	e.Decorate(caller)
	return e
}

func wrapError(kind Kind, caller string, cause error, format string, args ...any) *Error {
	e := newError(kind, caller, format, args...)
	e.err = cause
	return e
}

// errDecorate adds caller to err if err is an *Error, and returns it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// IsKind reports whether err, or an error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == k
	}
	return false
}
