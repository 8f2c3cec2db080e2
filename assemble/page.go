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

package assemble

import (
	"bytes"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/imgpdf/internal/float"
)

// placement computes the page size and the transformation which maps the
// unit square onto the image area of the page.
func (a *Assembler) placement(width, height int, imageDPI float64) (float64, float64, matrix.Matrix) {
	w, h := float64(width), float64(height)

	if ps := a.opt.PageSize; ps != nil {
		scale := min(ps.Width/w, ps.Height/h)
		w *= scale
		h *= scale
		x := (ps.Width - w) / 2
		y := (ps.Height - h) / 2
		return ps.Width, ps.Height, matrix.Scale(w, h).Mul(matrix.Translate(x, y))
	}

	dpi := a.opt.DPI
	if dpi <= 0 {
		dpi = imageDPI
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	w = w * 72 / dpi
	h = h * 72 / dpi
	return w, h, matrix.Scale(w, h)
}

// contentStream draws the named image XObject using the transformation m.
func contentStream(m matrix.Matrix, name string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("q\n")
	for _, x := range m {
		buf.WriteString(float.Format(x, 3))
		buf.WriteByte(' ')
	}
	buf.WriteString("cm\n/")
	buf.WriteString(name)
	buf.WriteString(" Do\nQ\n")
	return buf.Bytes()
}
