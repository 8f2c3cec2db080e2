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
	"strconv"
	"strings"

	"seehuhn.de/go/imgpdf"
)

// ParsePageRanges parses a page selection like "1,3-5,10" for a document
// with numPages pages.  Page numbers in s are 1-based, the returned indices
// are 0-based and appear in the order given.  Adjacent duplicates are
// collapsed.
func ParsePageRanges(s string, numPages int) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if from, to, isRange := strings.Cut(part, "-"); isRange {
			start, err := strconv.Atoi(strings.TrimSpace(from))
			if err != nil {
				return nil, imgpdf.Errorf(imgpdf.ValidationError,
					"invalid page number in range %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(to))
			if err != nil {
				return nil, imgpdf.Errorf(imgpdf.ValidationError,
					"invalid page number in range %q", part)
			}
			if start < 1 || end < start || end > numPages {
				return nil, imgpdf.Errorf(imgpdf.ValidationError,
					"page range %d-%d out of bounds (document has %d pages)",
					start, end, numPages)
			}
			for p := start; p <= end; p++ {
				pages = append(pages, p-1)
			}
			continue
		}

		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, imgpdf.Errorf(imgpdf.ValidationError,
				"invalid page number %q", part)
		}
		if p < 1 || p > numPages {
			return nil, imgpdf.Errorf(imgpdf.ValidationError,
				"page %d out of bounds (document has %d pages)", p, numPages)
		}
		pages = append(pages, p-1)
	}
	if len(pages) == 0 {
		return nil, imgpdf.Errorf(imgpdf.ValidationError, "no pages specified")
	}

	out := pages[:1]
	for _, p := range pages[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out, nil
}
