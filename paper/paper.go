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

// Package paper lists the fixed page sizes supported for image pages.
package paper

import (
	"fmt"
	"slices"
	"strings"

	"seehuhn.de/go/imgpdf"
)

// Size is a paper size, in PDF points.
type Size struct {
	Name          string
	Width, Height float64
}

// Standard paper sizes in portrait orientation.
var (
	A4     = Size{Name: "a4", Width: 595.28, Height: 841.89}
	Letter = Size{Name: "letter", Width: 612, Height: 792}
	Legal  = Size{Name: "legal", Width: 612, Height: 1008}
	A3     = Size{Name: "a3", Width: 841.89, Height: 1190.55}
)

// All lists the known paper sizes.
var All = []Size{A4, Letter, Legal, A3}

// Names returns the names of all known paper sizes.
func Names() []string {
	res := make([]string, len(All))
	for i, s := range All {
		res[i] = s.Name
	}
	return res
}

// Parse looks up a paper size by name.  Case is ignored.
func Parse(name string) (Size, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	idx := slices.IndexFunc(All, func(s Size) bool { return s.Name == name })
	if idx < 0 {
		return Size{}, imgpdf.Errorf(imgpdf.ValidationError,
			"unknown page size %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return All[idx], nil
}

func (s Size) String() string {
	return fmt.Sprintf("%s (%gx%g pt)", s.Name, s.Width, s.Height)
}
