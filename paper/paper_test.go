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

package paper

import (
	"testing"

	"seehuhn.de/go/imgpdf"
)

func TestParse(t *testing.T) {
	for _, name := range []string{"a4", "A4", " Letter ", "LEGAL", "a3"} {
		s, err := Parse(name)
		if err != nil {
			t.Errorf("Parse(%q): %v", name, err)
			continue
		}
		if s.Width <= 0 || s.Height <= s.Width {
			t.Errorf("Parse(%q) = %v, want portrait size", name, s)
		}
	}

	s, _ := Parse("letter")
	if s != Letter {
		t.Errorf("Parse(letter) = %v", s)
	}

	_, err := Parse("b5")
	if imgpdf.KindOf(err) != imgpdf.ValidationError {
		t.Errorf("Parse(b5): got %v", err)
	}
}
