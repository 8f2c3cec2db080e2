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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	// decoders for the generic path
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/header"
	"seehuhn.de/go/imgpdf/internal/deflate"
)

// splitPNGAlpha decodes a PNG image with an alpha channel or a tRNS chunk
// and compresses color and alpha separately.  Gray images keep a single
// color channel.
func splitPNGAlpha(data []byte, info *header.PNGInfo) (Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "decoding PNG: %w", err)
	}
	channels := 3
	if info.ColorType == header.ColorGray || info.ColorType == header.ColorGrayAlpha {
		channels = 1
	}
	return splitAlpha(toNRGBA(img), channels, info.DPI, info.ICCProfile)
}

// decodeGeneric decodes any supported image format and compresses the
// pixel data.
func decodeGeneric(data []byte, dpi float64, profile []byte) (Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, imgpdf.Errorf(imgpdf.UnsupportedFormat, "unknown image format")
	} else if err != nil {
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "decoding image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "image has no pixels")
	}

	switch {
	case hasAlpha(img):
		return splitAlpha(toNRGBA(img), 3, dpi, profile)
	case isGray(img):
		return compressGray(img, dpi, profile)
	default:
		return compressRGB(img, dpi, profile)
	}
}

// splitAlpha compresses the color channels and the alpha channel of img
// into two independent streams.  The image is processed one row at a time.
func splitAlpha(img *image.NRGBA, channels int, dpi float64, profile []byte) (Image, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	colorBuf := deflate.NewBuffer()
	alphaBuf := deflate.NewBuffer()
	colorRow := make([]byte, width*channels)
	alphaRow := make([]byte, width)
	for y := 0; y < height; y++ {
		pix := img.Pix[y*img.Stride : y*img.Stride+4*width]
		for x := 0; x < width; x++ {
			p := pix[4*x : 4*x+4]
			if channels == 1 {
				colorRow[x] = p[0]
			} else {
				copy(colorRow[3*x:3*x+3], p[:3])
			}
			alphaRow[x] = p[3]
		}
		colorBuf.Write(colorRow)
		alphaBuf.Write(alphaRow)
	}

	colorData, err := colorBuf.Finish()
	if err != nil {
		alphaBuf.Finish()
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "compressing color data: %w", err)
	}
	alphaData, err := alphaBuf.Finish()
	if err != nil {
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "compressing alpha channel: %w", err)
	}

	return &Recompressed{
		Width:      width,
		Height:     height,
		Channels:   channels,
		Color:      colorData,
		Alpha:      alphaData,
		Resolution: dpi,
		Profile:    profile,
	}, nil
}

func compressGray(img image.Image, dpi float64, profile []byte) (Image, error) {
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = image.NewGray(img.Bounds())
		draw.Draw(gray, gray.Rect, img, img.Bounds().Min, draw.Src)
	}
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()

	buf := deflate.NewBuffer()
	for y := 0; y < height; y++ {
		start := gray.PixOffset(b.Min.X, b.Min.Y+y)
		buf.Write(gray.Pix[start : start+width])
	}
	data, err := buf.Finish()
	if err != nil {
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "compressing gray data: %w", err)
	}
	return &Recompressed{
		Width:      width,
		Height:     height,
		Channels:   1,
		Color:      data,
		Resolution: dpi,
		Profile:    profile,
	}, nil
}

// compressRGB compresses an opaque image as 8-bit RGB.
func compressRGB(img image.Image, dpi float64, profile []byte) (Image, error) {
	// For opaque images, premultiplied and straight colors coincide.
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Rect, img, img.Bounds().Min, draw.Src)
	}
	b := rgba.Bounds()
	width, height := b.Dx(), b.Dy()

	buf := deflate.NewBuffer()
	row := make([]byte, 3*width)
	for y := 0; y < height; y++ {
		start := rgba.PixOffset(b.Min.X, b.Min.Y+y)
		pix := rgba.Pix[start : start+4*width]
		for x := 0; x < width; x++ {
			copy(row[3*x:3*x+3], pix[4*x:4*x+3])
		}
		buf.Write(row)
	}
	data, err := buf.Finish()
	if err != nil {
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "compressing RGB data: %w", err)
	}
	return &Recompressed{
		Width:      width,
		Height:     height,
		Channels:   3,
		Color:      data,
		Resolution: dpi,
		Profile:    profile,
	}, nil
}

// toNRGBA returns img as an *image.NRGBA with origin (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	if res, ok := img.(*image.NRGBA); ok && res.Rect.Min == (image.Point{}) {
		return res
	}
	b := img.Bounds()
	res := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(res, res.Rect, img, b.Min, draw.Src)
	return res
}

func isGray(img image.Image) bool {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return true
	}
	return false
}

// hasAlpha reports whether the color model of img has an alpha channel.
// The standard decoders also use *image.RGBA and *image.RGBA64 for opaque
// data, so for these the pixels decide.
func hasAlpha(img image.Image) bool {
	switch img := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return true
	case *image.RGBA:
		return !img.Opaque()
	case *image.RGBA64:
		return !img.Opaque()
	case *image.Paletted:
		for _, c := range img.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}

	switch img.ColorModel() {
	case color.NRGBAModel, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}
