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

// Package assemble builds a PDF document with one page per image.
//
// Images are added in page order using [Assembler.AddImage].  The object
// graph is kept in a [pdf.Document], which is returned by
// [Assembler.Finish] once all pages have been added.
package assemble

import (
	"time"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/paper"
	"seehuhn.de/go/imgpdf/pdf"
	"seehuhn.de/go/imgpdf/prepare"
)

// DefaultDPI is used for images which do not specify a resolution.
const DefaultDPI = 300

// Options control the layout and metadata of the generated document.
type Options struct {
	// DPI, if non-zero, overrides the resolution of all images.
	// This is ignored if PageSize is set.
	DPI float64

	// PageSize, if set, selects a fixed page size.  Images are scaled to
	// fit the page and centered.  Otherwise, every page has the natural
	// size of its image.
	PageSize *paper.Size

	Title  string
	Author string

	// Producer is written to the document information dictionary.
	Producer string

	// CreationTime is the document creation date.
	// If this is zero, the current time is used.
	CreationTime time.Time
}

// Assembler collects pages for a PDF document.
type Assembler struct {
	doc   *pdf.Document
	opt   Options
	pages pdf.Reference
	kids  pdf.Array

	// iccCache maps ICC profile data to the profile stream
	iccCache map[string]pdf.Reference
}

// New returns an Assembler for an empty document.
func New(opt *Options) *Assembler {
	a := &Assembler{
		doc:      pdf.NewDocument(),
		iccCache: make(map[string]pdf.Reference),
	}
	if opt != nil {
		a.opt = *opt
	}
	a.pages = a.doc.Alloc()
	return a
}

// AddImage appends a page showing im to the document.
func (a *Assembler) AddImage(im prepare.Image) error {
	e := &embedder{a: a}
	if err := im.Accept(e); err != nil {
		return err
	}

	width, height := im.Size()
	pageWidth, pageHeight, m := a.placement(width, height, im.DPI())

	content := &pdf.Stream{
		Dict: pdf.Dict{},
		Data: contentStream(m, "Im0"),
	}
	resources := pdf.Dict{
		"XObject": pdf.Dict{"Im0": e.ref},
	}
	page := pdf.Dict{
		"Type":      pdf.Name("Page"),
		"Parent":    a.pages,
		"MediaBox":  pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Real(pageWidth), pdf.Real(pageHeight)},
		"Resources": a.doc.Add(resources),
		"Contents":  a.doc.Add(content),
	}
	a.kids = append(a.kids, a.doc.Add(page))
	return nil
}

// NumPages returns the number of pages added so far.
func (a *Assembler) NumPages() int {
	return len(a.kids)
}

// Finish adds the page tree, the catalog and the document metadata.
// The Assembler must not be used after Finish has been called.
func (a *Assembler) Finish() (*pdf.Document, error) {
	if len(a.kids) == 0 {
		return nil, imgpdf.Errorf(imgpdf.ValidationError, "document has no pages")
	}

	err := a.doc.Set(a.pages, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  a.kids,
		"Count": pdf.Integer(len(a.kids)),
	})
	if err != nil {
		return nil, err
	}

	created := a.opt.CreationTime
	if created.IsZero() {
		created = time.Now()
	}

	metadata, err := a.addMetadata(created)
	if err != nil {
		return nil, err
	}
	a.doc.Info = a.addInfo(created)
	a.doc.Catalog = a.doc.Add(pdf.Dict{
		"Type":     pdf.Name("Catalog"),
		"Pages":    a.pages,
		"Metadata": metadata,
	})

	return a.doc, nil
}
