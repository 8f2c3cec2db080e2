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
	"encoding/binary"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"

	"seehuhn.de/go/imgpdf"
)

// PNG color types
const (
	ColorGray      = 0
	ColorRGB       = 2
	ColorPalette   = 3
	ColorGrayAlpha = 4
	ColorRGBA      = 6
)

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// PNGInfo describes a PNG file.
type PNGInfo struct {
	Width, Height int
	BitDepth      int
	ColorType     int
	Interlaced    bool

	// HasTransparency is set if the file contains a tRNS chunk.
	HasTransparency bool

	// IDAT is the concatenation of all IDAT chunks, in file order.
	IDAT []byte

	// Palette holds the contents of the PLTE chunk.
	Palette []byte

	// DPI is the horizontal resolution from the pHYs chunk,
	// or 0 if the file does not specify one.
	DPI float64

	// ICCProfile is the decompressed iCCP profile, if any.
	ICCProfile []byte
}

// Channels returns the number of samples per pixel.
func (info *PNGInfo) Channels() int {
	switch info.ColorType {
	case ColorGray, ColorPalette:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	}
	return 0
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

// ParsePNG reads the chunk structure of a PNG file.  Chunk CRCs are not
// verified.
func ParsePNG(data []byte) (*PNGInfo, error) {
	if !IsPNG(data) {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "invalid PNG signature")
	}

	info := &PNGInfo{}
	var gotIHDR, gotIDAT bool
	var idat [][]byte

	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		tp := string(data[pos+4 : pos+8])
		start := pos + 8
		if length > len(data)-start || len(data)-start-length < 4 {
			return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
				"PNG chunk %q at byte %d overruns the file", tp, pos)
		}
		body := data[start : start+length]
		pos = start + length + 4

		switch tp {
		case "IHDR":
			if length < 13 {
				return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "PNG IHDR chunk too short")
			}
			info.Width = int(binary.BigEndian.Uint32(body[0:]))
			info.Height = int(binary.BigEndian.Uint32(body[4:]))
			info.BitDepth = int(body[8])
			info.ColorType = int(body[9])
			info.Interlaced = body[12] != 0
			gotIHDR = true
		case "IDAT":
			if !gotIHDR {
				return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "PNG IDAT chunk before IHDR")
			}
			idat = append(idat, body)
			gotIDAT = true
		case "PLTE":
			if length == 0 || length%3 != 0 || length > 3*256 {
				return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
					"invalid PNG palette length %d", length)
			}
			info.Palette = append(info.Palette[:0], body...)
		case "tRNS":
			info.HasTransparency = true
		case "pHYs":
			if length >= 9 && body[8] == 1 {
				ppm := float64(binary.BigEndian.Uint32(body))
				if ppm > 0 {
					info.DPI = math.Round(ppm * 0.0254)
				}
			}
		case "iCCP":
			info.ICCProfile = inflateICCP(body)
		}
		if tp == "IEND" {
			break
		}
	}

	if !gotIHDR {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "PNG IHDR chunk missing")
	}
	if !gotIDAT {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "no IDAT chunk found in PNG")
	}
	if info.ColorType == ColorPalette && len(info.Palette) == 0 {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "PNG palette image without PLTE chunk")
	}
	info.IDAT = bytes.Join(idat, nil)

	return info, nil
}

// inflateICCP decompresses the profile stored in an iCCP chunk.  The chunk
// holds a profile name, a NUL byte, the compression method (always 0), and
// the zlib-compressed profile.  Damaged profiles are ignored.
func inflateICCP(body []byte) []byte {
	i := bytes.IndexByte(body, 0)
	if i < 1 || i+2 > len(body) || body[i+1] != 0 {
		return nil
	}
	r, err := zlib.NewReader(bytes.NewReader(body[i+2:]))
	if err != nil {
		return nil
	}
	defer r.Close()
	profile, err := io.ReadAll(r)
	if err != nil || len(profile) == 0 {
		return nil
	}
	return profile
}
