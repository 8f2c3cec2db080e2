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
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"seehuhn.de/go/imgpdf"
)

// Format is the file format of the extracted page images.
type Format int

// These are the supported image formats.
const (
	PNG Format = iota
	JPEG
)

// Ext returns the file name extension for f, without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

func (f Format) String() string {
	return f.Ext()
}

// Set implements the pflag.Value interface.
func (f *Format) Set(s string) error {
	switch strings.ToLower(s) {
	case "png":
		*f = PNG
	case "jpg", "jpeg":
		*f = JPEG
	default:
		return imgpdf.Errorf(imgpdf.ValidationError,
			"invalid format %q (want png or jpg)", s)
	}
	return nil
}

// Type implements the pflag.Value interface.
func (f *Format) Type() string {
	return "format"
}

// Compression selects the trade-off between speed and size for PNG output.
type Compression int

// These are the supported PNG compression settings.
const (
	// Fast gives the fastest encoding and larger files.
	Fast Compression = iota

	// Small gives smaller files and slower encoding.
	Small
)

func (c Compression) String() string {
	if c == Small {
		return "small"
	}
	return "fast"
}

// Set implements the pflag.Value interface.
func (c *Compression) Set(s string) error {
	switch strings.ToLower(s) {
	case "fast":
		*c = Fast
	case "small":
		*c = Small
	default:
		return imgpdf.Errorf(imgpdf.ValidationError,
			"invalid compression %q (want fast or small)", s)
	}
	return nil
}

// Type implements the pflag.Value interface.
func (c *Compression) Type() string {
	return "level"
}

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 75

type encoder struct {
	format  Format
	png     *png.Encoder
	quality int
	gray    bool
}

func newEncoder(opt *Options) *encoder {
	enc := &encoder{
		format:  opt.Format,
		quality: opt.Quality,
		gray:    opt.Gray,
	}
	if enc.quality == 0 {
		enc.quality = DefaultQuality
	}
	level := png.BestSpeed
	if opt.Compression == Small {
		level = png.BestCompression
	}
	enc.png = &png.Encoder{CompressionLevel: level}
	return enc
}

// Encode writes img to w in the configured format.
func (enc *encoder) Encode(w io.Writer, img image.Image) error {
	if enc.gray {
		img = toGray(img)
	}

	bw := bufio.NewWriter(w)
	var err error
	switch enc.format {
	case JPEG:
		err = jpeg.Encode(bw, img, &jpeg.Options{Quality: enc.quality})
	default:
		err = enc.png.Encode(bw, img)
	}
	if err != nil {
		return imgpdf.Wrap(imgpdf.EncodeError,
			fmt.Errorf("encoding %s: %w", enc.format, err))
	}
	if err := bw.Flush(); err != nil {
		return imgpdf.Wrap(imgpdf.IOError, err)
	}
	return nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, img, b.Min, draw.Src)
	return g
}
