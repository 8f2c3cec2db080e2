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

// Package header extracts structural information from JPEG and PNG files
// without decoding the pixel data.
package header

import (
	"encoding/binary"
	"math"

	"seehuhn.de/go/imgpdf"
)

// JPEGInfo describes a JPEG file.
type JPEGInfo struct {
	Width, Height int

	// Components is the number of color components (1, 3 or 4 for the
	// images we can embed).
	Components int

	// Precision is the sample precision in bits.
	Precision int

	// DPI is the horizontal resolution from the JFIF header,
	// or 0 if the file does not specify one.
	DPI float64

	// ICCProfile is the embedded color profile, if any.
	ICCProfile []byte

	// HasAdobe is set if the file contains an Adobe APP14 segment.
	// AdobeTransform then holds the color transform code from that segment.
	HasAdobe       bool
	AdobeTransform int
}

// InvertCMYK reports whether the image stores inverted CMYK values.
//
// This is a heuristic: four-component JPEGs are assumed to be inverted
// unless an Adobe segment explicitly specifies transform code 0.  This
// matches the files written by Adobe applications.
func (info *JPEGInfo) InvertCMYK() bool {
	return info.Components == 4 && (!info.HasAdobe || info.AdobeTransform != 0)
}

// IsJPEG reports whether data starts with a JPEG start-of-image marker.
func IsJPEG(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8
}

// ParseJPEG reads the markers of a JPEG file up to the first start-of-frame
// marker.  Scan data following the frame header is never inspected.
func ParseJPEG(data []byte) (*JPEGInfo, error) {
	if !IsJPEG(data) {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "missing JPEG SOI marker")
	}

	info := &JPEGInfo{}
	var iccChunks [][]byte

	pos := 2
	for pos < len(data) {
		if data[pos] != 0xFF {
			return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
				"invalid JPEG marker at byte %d", pos)
		}
		for pos < len(data) && data[pos] == 0xFF {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++

		if marker == 0x00 || marker >= 0xD0 && marker <= 0xD9 {
			// no length field
			continue
		}

		if pos+2 > len(data) {
			return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
				"truncated JPEG marker %02X", marker)
		}
		length := int(binary.BigEndian.Uint16(data[pos:]))
		if length < 2 || pos+length > len(data) {
			return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
				"JPEG segment %02X at byte %d overruns the file", marker, pos-2)
		}
		payload := data[pos+2 : pos+length]
		pos += length

		switch {
		case isSOF(marker):
			if len(payload) < 6 {
				return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "truncated JPEG frame header")
			}
			info.Precision = int(payload[0])
			info.Height = int(binary.BigEndian.Uint16(payload[1:]))
			info.Width = int(binary.BigEndian.Uint16(payload[3:]))
			info.Components = int(payload[5])
			info.ICCProfile = assembleICC(iccChunks)
			return info, nil

		case marker == 0xE0: // APP0
			if dpi, ok := jfifDPI(payload); ok {
				info.DPI = dpi
			}
		case marker == 0xE2: // APP2
			iccChunks = append(iccChunks, payload)
		case marker == 0xEE: // APP14
			if len(payload) >= 12 && string(payload[:5]) == "Adobe" {
				info.HasAdobe = true
				info.AdobeTransform = int(payload[11])
			}
		}
	}

	return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "no SOF marker found in JPEG")
}

// isSOF reports whether marker is one of the start-of-frame markers.
// DHT (C4), JPG (C8) and DAC (CC) share the same range but are not frames.
func isSOF(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	return marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}

// jfifDPI extracts the horizontal resolution from a JFIF APP0 payload.
func jfifDPI(payload []byte) (float64, bool) {
	if len(payload) < 12 || string(payload[:5]) != "JFIF\x00" {
		return 0, false
	}
	units := payload[7]
	xDensity := float64(binary.BigEndian.Uint16(payload[8:]))
	if xDensity == 0 {
		return 0, false
	}
	switch units {
	case 1: // dots per inch
		return xDensity, true
	case 2: // dots per cm
		return math.Round(xDensity * 2.54), true
	}
	return 0, false
}
