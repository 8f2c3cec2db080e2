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
	"fmt"
)

// Failure records the error for one item of a batch.
type Failure struct {
	// Index is the 0-based position of the item in the input.
	Index int

	// Path is the file name of the item, if known.
	Path string

	Err error
}

// BatchError is returned when one or more items of a batch could not be
// processed.  Failures are listed in input order.
type BatchError struct {
	// Unit names the items, for example "image" or "page".
	Unit     string
	Failures []Failure
}

func (err *BatchError) Error() string {
	if len(err.Failures) == 0 {
		return "no failures"
	}
	first := err.Failures[0]
	n := len(err.Failures)
	plural := "s"
	if n == 1 {
		plural = ""
	}
	return fmt.Sprintf("failed on %s %d: %v (%d total failure%s)",
		err.Unit, first.Index+1, first.Err, n, plural)
}

// Unwrap returns the first failure.
func (err *BatchError) Unwrap() error {
	if len(err.Failures) == 0 {
		return nil
	}
	return err.Failures[0].Err
}

// Lines returns one message per failure, suitable for logging.
func (err *BatchError) Lines() []string {
	res := make([]string, len(err.Failures))
	for i, f := range err.Failures {
		res[i] = fmt.Sprintf("%s %d: %v", err.Unit, f.Index+1, f.Err)
	}
	return res
}
