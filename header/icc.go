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

package header

import (
	"bytes"
	"slices"
)

const iccTag = "ICC_PROFILE\x00"

// assembleICC reassembles an ICC profile from the payloads of JPEG APP2
// segments.  Segments which are not part of an ICC profile are ignored.
// If the chunks are inconsistent, no profile is returned.
func assembleICC(segments [][]byte) []byte {
	type chunk struct {
		seq  int
		data []byte
	}
	var chunks []chunk
	count := 0
	for _, seg := range segments {
		if len(seg) < 14 || string(seg[:12]) != iccTag {
			continue
		}
		seq, n := int(seg[12]), int(seg[13])
		if seq == 0 || seq > n {
			return nil
		}
		if count == 0 {
			count = n
		} else if n != count {
			return nil
		}
		chunks = append(chunks, chunk{seq: seq, data: seg[14:]})
	}
	if len(chunks) == 0 || len(chunks) != count {
		return nil
	}

	slices.SortFunc(chunks, func(a, b chunk) int { return a.seq - b.seq })
	buf := &bytes.Buffer{}
	for i, c := range chunks {
		if c.seq != i+1 {
			return nil // duplicate sequence number
		}
		buf.Write(c.data)
	}
	if buf.Len() == 0 {
		return nil
	}
	return buf.Bytes()
}
