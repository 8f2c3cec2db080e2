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

package split

import (
	"image"

	"github.com/gen2brain/go-fitz"

	"seehuhn.de/go/imgpdf"
)

// Renderer rasterizes the pages of a PDF document.
// A Renderer is used by a single goroutine at a time.
type Renderer interface {
	// NumPage returns the number of pages in the document.
	NumPage() int

	// Render rasterizes page i (0-based) at the given resolution.
	Render(i int, dpi float64) (image.Image, error)

	Close() error
}

// OpenFunc opens a Renderer for the named PDF file.
type OpenFunc func(path string) (Renderer, error)

// OpenFitz opens a PDF file using the MuPDF library.
func OpenFitz(path string) (Renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, imgpdf.WithPath(path, imgpdf.Wrap(imgpdf.IOError, err))
	}
	return &fitzRenderer{doc: doc}, nil
}

type fitzRenderer struct {
	doc *fitz.Document
}

func (r *fitzRenderer) NumPage() int {
	return r.doc.NumPage()
}

func (r *fitzRenderer) Render(i int, dpi float64) (image.Image, error) {
	img, err := r.doc.ImageDPI(i, dpi)
	if err != nil {
		return nil, imgpdf.Wrap(imgpdf.EncodeError, err)
	}
	return img, nil
}

func (r *fitzRenderer) Close() error {
	return r.doc.Close()
}
