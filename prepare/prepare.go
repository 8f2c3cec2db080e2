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

package prepare

import (
	"os"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/header"
)

// File reads the named file and prepares it for embedding.
// Errors carry the file name.
func File(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, imgpdf.WithPath(path, imgpdf.Wrap(imgpdf.IOError, err))
	}
	im, err := Bytes(data)
	if err != nil {
		return nil, imgpdf.WithPath(path, err)
	}
	return im, nil
}

// Bytes classifies the image file in data and prepares it for embedding.
//
// JPEG files are always passed through.  PNG files with color type 0, 2 or
// 3 are passed through if they are neither interlaced nor contain a tRNS
// chunk.  PNG files with an alpha channel or a tRNS chunk are decoded and
// always get a separate alpha channel.  All other files are decoded and
// re-compressed.
func Bytes(data []byte) (Image, error) {
	if len(data) < 4 {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "file too small")
	}

	switch {
	case header.IsJPEG(data):
		return prepareJPEG(data)
	case header.IsPNG(data):
		return preparePNG(data)
	default:
		return decodeGeneric(data, 0, nil)
	}
}

func prepareJPEG(data []byte) (Image, error) {
	info, err := header.ParseJPEG(data)
	if err != nil {
		return nil, err
	}
	switch info.Components {
	case 1, 3, 4:
		// pass
	default:
		return nil, imgpdf.Errorf(imgpdf.UnsupportedFormat,
			"unsupported number of JPEG components: %d", info.Components)
	}
	if info.Width == 0 || info.Height == 0 {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
			"invalid JPEG dimensions %dx%d", info.Width, info.Height)
	}
	return &JPEG{Data: data, Info: info}, nil
}

func preparePNG(data []byte) (Image, error) {
	info, err := header.ParsePNG(data)
	if err != nil {
		return nil, err
	}
	if info.Channels() == 0 {
		return nil, imgpdf.Errorf(imgpdf.UnsupportedFormat,
			"unsupported PNG color type %d", info.ColorType)
	}

	if info.Width == 0 || info.Height == 0 {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader,
			"invalid PNG dimensions %dx%d", info.Width, info.Height)
	}

	switch {
	case info.HasTransparency ||
		info.ColorType == header.ColorGrayAlpha || info.ColorType == header.ColorRGBA:
		// the soft mask is kept even if all pixels are opaque
		return splitPNGAlpha(data, info)
	case info.Interlaced:
		// the stored scanlines cannot be described by a PDF predictor
		return decodeGeneric(data, info.DPI, info.ICCProfile)
	default:
		return &PNG{Info: info}, nil
	}
}
