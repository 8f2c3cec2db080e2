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

// Package prepare turns image files into payloads which can be embedded
// into a PDF file.
//
// Each input is classified into one of three variants.  JPEG files and
// suitable PNG files are passed through with their compressed data
// unchanged; everything else is decoded and re-compressed.  The variants
// are the types [*JPEG], [*PNG] and [*Recompressed]; code which needs to
// distinguish them implements [Visitor].
package prepare

import (
	"seehuhn.de/go/imgpdf/header"
)

// Image is a prepared image, ready for embedding.
// The only implementations are *JPEG, *PNG and *Recompressed.
type Image interface {
	// Size returns the image dimensions in pixels.
	Size() (width, height int)

	// DPI returns the resolution stored in the file, or 0 if unknown.
	DPI() float64

	// ICCProfile returns the embedded color profile, or nil.
	ICCProfile() []byte

	// Accept calls the method of v which matches the image variant.
	Accept(v Visitor) error

	isImage()
}

// Visitor receives the variants of Image.
// Adding a variant adds a method here, so that all consumers must be
// updated before the code compiles again.
type Visitor interface {
	VisitJPEG(im *JPEG) error
	VisitPNG(im *PNG) error
	VisitRecompressed(im *Recompressed) error
}

// JPEG is a JPEG file which is embedded unchanged, using the DCTDecode
// filter.
type JPEG struct {
	// Data is the complete JPEG file.
	Data []byte
	Info *header.JPEGInfo
}

func (im *JPEG) Size() (int, int) {
	return im.Info.Width, im.Info.Height
}

func (im *JPEG) DPI() float64 {
	return im.Info.DPI
}

func (im *JPEG) ICCProfile() []byte {
	return im.Info.ICCProfile
}

func (im *JPEG) Accept(v Visitor) error {
	return v.VisitJPEG(im)
}

func (im *JPEG) isImage() {}

// PNG is a PNG file whose IDAT data is embedded unchanged, using the
// FlateDecode filter with a PNG predictor.
type PNG struct {
	Info *header.PNGInfo
}

func (im *PNG) Size() (int, int) {
	return im.Info.Width, im.Info.Height
}

func (im *PNG) DPI() float64 {
	return im.Info.DPI
}

func (im *PNG) ICCProfile() []byte {
	return im.Info.ICCProfile
}

func (im *PNG) Accept(v Visitor) error {
	return v.VisitPNG(im)
}

func (im *PNG) isImage() {}

// Recompressed is an image which was decoded and compressed again.
// The color data is stored without a predictor, 8 bits per sample.
type Recompressed struct {
	Width, Height int

	// Channels is 1 for grayscale and 3 for RGB images.
	Channels int

	// Color holds the zlib-compressed color samples.
	Color []byte

	// Alpha holds the zlib-compressed alpha channel,
	// or nil if the image is opaque.
	Alpha []byte

	Resolution float64
	Profile    []byte
}

func (im *Recompressed) Size() (int, int) {
	return im.Width, im.Height
}

func (im *Recompressed) DPI() float64 {
	return im.Resolution
}

func (im *Recompressed) ICCProfile() []byte {
	return im.Profile
}

func (im *Recompressed) Accept(v Visitor) error {
	return v.VisitRecompressed(im)
}

func (im *Recompressed) isImage() {}
