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

// Package imgpdf converts raster images into PDF documents and back.
//
// Compressed image data is embedded unchanged whenever the PDF format can
// describe it directly: JPEG files are always copied verbatim, and
// non-interlaced PNG files without transparency keep their IDAT stream
// together with a PNG predictor.  All other images are decoded and
// re-compressed, with any alpha channel stored in a separate soft mask.
//
// The work is split over several packages:
//
//	header    reads JPEG and PNG metadata without decoding pixels
//	prepare   decides between passthrough and re-compression
//	assemble  builds the PDF object graph, one page per image
//	merge     runs the two-phase image to PDF pipeline
//	split     renders PDF pages into PNG or JPEG files
//	pdf       the PDF object model and file writer
//
// Errors returned by these packages can be classified using [KindOf].
package imgpdf
