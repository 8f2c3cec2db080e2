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

// Package pdf implements the subset of the PDF object model needed to write
// image documents.
//
// Objects are collected in a [Document], an append-only arena which hands
// out a [Reference] for every indirect object.  Once all objects are in
// place, [Document.WriteTo] serializes the file, using a classic
// cross-reference table.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"

	"seehuhn.de/go/imgpdf/internal/float"
)

// Object represents an object in a PDF file.  The types Integer, Real, Name,
// String, Array, Dict, *Stream, and Reference implement this interface.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the Object interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a real number in a PDF file.
// Values are written with at most four decimal places.
type Real float64

// PDF implements the Object interface.
func (x Real) PDF(w io.Writer) error {
	_, err := io.WriteString(w, float.Format(float64(x), 4))
	return err
}

// Name represents a name in a PDF file.
type Name string

// PDF implements the Object interface.
func (x Name) PDF(w io.Writer) error {
	buf := &bytes.Buffer{}
	buf.WriteByte('/')
	for _, c := range []byte(x) {
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			fmt.Fprintf(buf, "#%02x", c)
		} else {
			buf.WriteByte(c)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// String represents a string in a PDF file.  Strings consisting mostly of
// printable ASCII are written in literal form, everything else in
// hexadecimal form.
type String []byte

// PDF implements the Object interface.
func (x String) PDF(w io.Writer) error {
	var special int
	for _, c := range x {
		if c < 32 || c >= 127 {
			special++
		}
	}
	if 3*special > len(x) {
		_, err := fmt.Fprintf(w, "<%x>", []byte(x))
		return err
	}

	buf := &bytes.Buffer{}
	buf.WriteByte('(')
	for _, c := range x {
		switch {
		case c == '(' || c == ')' || c == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c == '\n':
			buf.WriteString(`\n`)
		case c == '\r':
			buf.WriteString(`\r`)
		case c < 32 || c >= 127:
			fmt.Fprintf(buf, `\%03o`, c)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
	_, err := w.Write(buf.Bytes())
	return err
}

// HexString is a String which is always written in hexadecimal form.
// This is used for binary data like color palettes.
type HexString []byte

// PDF implements the Object interface.
func (x HexString) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "<%X>", []byte(x))
	return err
}

// Array represent an array of objects in a PDF file.
type Array []Object

// PDF implements the Object interface.
func (x Array) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if val == nil {
			_, err = io.WriteString(w, "null")
		} else {
			err = val.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

// Dict represent a Dictionary object in a PDF file.
// Keys are written in sorted order and nil values are omitted.
type Dict map[Name]Object

// PDF implements the Object interface.
func (x Dict) PDF(w io.Writer) error {
	keys := make([]Name, 0, len(x))
	for key, val := range x {
		if val != nil {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	_, err := io.WriteString(w, "<<")
	if err != nil {
		return err
	}
	for _, name := range keys {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := name.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := x[name].PDF(w); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n>>")
	return err
}

// Stream represent a stream object in a PDF file.
// The /Length entry is filled in automatically when the stream is written.
type Stream struct {
	Dict
	Data []byte
}

// PDF implements the Object interface.
func (x *Stream) PDF(w io.Writer) error {
	dict := make(Dict, len(x.Dict)+1)
	for key, val := range x.Dict {
		dict[key] = val
	}
	dict["Length"] = Integer(len(x.Data))

	err := dict.PDF(w)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\nstream\n"); err != nil {
		return err
	}
	if _, err := w.Write(x.Data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nendstream")
	return err
}

// Reference represents a reference to an indirect object in a PDF file.
// The zero value is not a valid reference and is written as null.
type Reference uint32

// PDF implements the Object interface.
func (x Reference) PDF(w io.Writer) error {
	var err error
	if x == 0 {
		_, err = io.WriteString(w, "null")
	} else {
		_, err = fmt.Fprintf(w, "%d 0 R", uint32(x))
	}
	return err
}

func (x Reference) String() string {
	return "obj_" + strconv.FormatUint(uint64(x), 10)
}

// Format returns the PDF representation of obj as a string.
// This is mostly useful for debugging and in tests.
func Format(obj Object) string {
	if obj == nil {
		return "null"
	}
	buf := &bytes.Buffer{}
	if err := obj.PDF(buf); err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}
