// seehuhn.de/go/imgpdf - convert between raster images and PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package imgpdf

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies the errors returned by this module.
type Kind int

// These are the possible error kinds.
const (
	// OtherError is returned by KindOf for errors which do not carry a kind.
	OtherError Kind = iota

	// IOError indicates that a file could not be read or written.
	IOError

	// MalformedHeader indicates structurally invalid JPEG or PNG data.
	MalformedHeader

	// UnsupportedFormat indicates a well-formed file which cannot be
	// handled, for example an exotic PNG color type.
	UnsupportedFormat

	// EncodeError indicates a failure of a compression or image codec.
	EncodeError

	// ValidationError indicates that caller-supplied parameters are
	// inconsistent or out of range.
	ValidationError
)

func (k Kind) String() string {
	switch k {
	case IOError:
		return "I/O error"
	case MalformedHeader:
		return "malformed header"
	case UnsupportedFormat:
		return "unsupported format"
	case EncodeError:
		return "encode error"
	case ValidationError:
		return "invalid argument"
	default:
		return "error"
	}
}

// Error is the error type used throughout this module.
type Error struct {
	Kind Kind

	// Path is the file the error refers to, if any.
	Path string

	Err error
}

func (err *Error) Error() string {
	msg := err.Kind.String()
	if err.Err != nil {
		msg = err.Err.Error()
	}
	if err.Path != "" {
		return err.Path + ": " + msg
	}
	return msg
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Errorf returns a new error of the given kind.  The message is formatted
// as for fmt.Errorf, so that %w can be used to wrap an underlying error.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap returns err as an error of the given kind.
// Errors which already carry a kind are returned unchanged.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// WithPath attaches a file name to err.
// If err already carries a path, it is returned unchanged.
func WithPath(path string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Path != "" {
			return err
		}
		return &Error{Kind: e.Kind, Path: path, Err: err}
	}
	return &Error{Kind: OtherError, Path: path, Err: err}
}

// KindOf returns the kind of err.  Errors from the standard library's file
// system functions are reported as IOError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return IOError
	}
	return OtherError
}
