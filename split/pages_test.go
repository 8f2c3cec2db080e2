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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/imgpdf"
)

func TestParsePageRanges(t *testing.T) {
	cases := []struct {
		in       string
		numPages int
		want     []int
	}{
		{"1", 10, []int{0}},
		{"1,3-5,10", 10, []int{0, 2, 3, 4, 9}},
		{" 1 , 3 - 5 , 10 ", 10, []int{0, 2, 3, 4, 9}},
		{"1,2,", 5, []int{0, 1}},
		{",,2", 5, []int{1}},
		{"3,3", 5, []int{2}},
		{"3-3", 5, []int{2}},
		{"2-3,3-4", 5, []int{1, 2, 3}},
		{"1,3,1", 5, []int{0, 2, 0}},
		{"1-3", 3, []int{0, 1, 2}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParsePageRanges(c.in, c.numPages)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("unexpected pages (-want +got):\n%s", d)
			}
		})
	}
}

func TestParsePageRangesErrors(t *testing.T) {
	cases := []string{
		"",
		" , ",
		"0",
		"11",
		"5-11",
		"5-3",
		"abc",
		"-1",
		"1-",
		"1-2-3",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePageRanges(in, 10)
			if err == nil {
				t.Fatal("expected an error")
			}
			if k := imgpdf.KindOf(err); k != imgpdf.ValidationError {
				t.Errorf("wrong kind: %v", k)
			}
		})
	}
}
