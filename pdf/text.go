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
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// TextString creates a String object using the PDF "text string" encoding.
// Printable ASCII text is stored as-is, everything else is encoded as
// UTF-16BE with a byte order mark.
func TextString(s string) String {
	isASCII := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 32 || c >= 127) && c != '\n' && c != '\r' && c != '\t' {
			isASCII = false
			break
		}
	}
	if isASCII {
		return String(s)
	}

	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	buf, err := enc.Bytes([]byte(s))
	if err != nil {
		// invalid UTF-8 is stored as raw bytes
		return String(s)
	}
	return String(buf)
}

// Date encodes a point in time, given in seconds since the Unix epoch, as a
// PDF date string of the form "D:YYYYMMDDHHmmSSZ".  The time is always
// given in UTC.
func Date(unixSeconds int64) String {
	days := floorDiv(unixSeconds, 86400)
	secs := unixSeconds - days*86400
	y, m, d := civilFromDays(days)
	s := fmt.Sprintf("D:%04d%02d%02d%02d%02d%02dZ",
		y, m, d, secs/3600, secs/60%60, secs%60)
	return String(s)
}

// civilFromDays converts a day count relative to 1970-01-01 into a date in
// the proleptic Gregorian calendar.  Eras are 400-year cycles, starting on
// 0000-03-01 so that leap days fall at the end of each year.
func civilFromDays(days int64) (year, month, day int64) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097                                  // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	doy := doe - (365*yoe + yoe/4 - yoe/100)               // [0, 365]
	mp := (5*doy + 2) / 153                                // [0, 11], March = 0
	day = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
	}
	year = yoe + era*400
	if month <= 2 {
		year++
	}
	return year, month, day
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
