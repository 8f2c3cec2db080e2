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

package pdf

import (
	"errors"
	"fmt"
	"io"
)

// Version is the version written into the file header.
const Version = "1.5"

// Document is an append-only collection of indirect objects.
//
// Every object is identified by the Reference returned when it was added.
// References are never reused, and objects cannot be replaced once they
// have been set.  A Reference can be reserved with Alloc before the object
// it refers to is known; this is used for back-references such as the
// /Parent entry of a page.
type Document struct {
	// Catalog is the document catalog, written as /Root in the trailer.
	Catalog Reference

	// Info is the optional document information dictionary.
	Info Reference

	objects []Object
	isSet   []bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Alloc reserves a reference for an object which will be set later.
func (d *Document) Alloc() Reference {
	d.objects = append(d.objects, nil)
	d.isSet = append(d.isSet, false)
	return Reference(len(d.objects))
}

// Add appends obj to the document and returns its reference.
func (d *Document) Add(obj Object) Reference {
	d.objects = append(d.objects, obj)
	d.isSet = append(d.isSet, true)
	return Reference(len(d.objects))
}

// Set stores obj under a reference previously returned by Alloc.
func (d *Document) Set(ref Reference, obj Object) error {
	idx := int(ref) - 1
	if idx < 0 || idx >= len(d.objects) {
		return fmt.Errorf("invalid reference %d", ref)
	}
	if d.isSet[idx] {
		return fmt.Errorf("object %d already set", ref)
	}
	d.objects[idx] = obj
	d.isSet[idx] = true
	return nil
}

// Get returns the object stored under ref, or nil if there is none.
func (d *Document) Get(ref Reference) Object {
	idx := int(ref) - 1
	if idx < 0 || idx >= len(d.objects) {
		return nil
	}
	return d.objects[idx]
}

// Len returns the number of indirect objects, including reserved ones.
func (d *Document) Len() int {
	return len(d.objects)
}

// WriteTo writes the document as a complete PDF file.
// It implements the io.WriterTo interface.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if d.Catalog == 0 {
		return 0, errors.New("missing /Catalog")
	}
	for i, ok := range d.isSet {
		if !ok {
			return 0, fmt.Errorf("object %d allocated but never set", i+1)
		}
	}

	pw := &posWriter{w: w}
	_, err := fmt.Fprintf(pw, "%%PDF-%s\n%%\x80\x80\x80\x80\n", Version)
	if err != nil {
		return pw.pos, err
	}

	offsets := make([]int64, len(d.objects))
	for i, obj := range d.objects {
		offsets[i] = pw.pos
		if _, err := fmt.Fprintf(pw, "%d 0 obj\n", i+1); err != nil {
			return pw.pos, err
		}
		if obj == nil {
			_, err = io.WriteString(pw, "null")
		} else {
			err = obj.PDF(pw)
		}
		if err != nil {
			return pw.pos, err
		}
		if _, err := io.WriteString(pw, "\nendobj\n"); err != nil {
			return pw.pos, err
		}
	}

	xRefPos := pw.pos
	_, err = fmt.Fprintf(pw, "xref\n0 %d\n0000000000 65535 f\r\n", len(d.objects)+1)
	if err != nil {
		return pw.pos, err
	}
	for _, pos := range offsets {
		if _, err := fmt.Fprintf(pw, "%010d 00000 n\r\n", pos); err != nil {
			return pw.pos, err
		}
	}

	trailer := Dict{
		"Size": Integer(len(d.objects) + 1),
		"Root": d.Catalog,
	}
	if d.Info != 0 {
		trailer["Info"] = d.Info
	}
	if _, err := io.WriteString(pw, "trailer\n"); err != nil {
		return pw.pos, err
	}
	if err := trailer.PDF(pw); err != nil {
		return pw.pos, err
	}
	_, err = fmt.Fprintf(pw, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	return pw.pos, err
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
