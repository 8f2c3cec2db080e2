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

package assemble

import (
	"bytes"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/header"
	"seehuhn.de/go/imgpdf/internal/deflate"
	"seehuhn.de/go/imgpdf/pdf"
	"seehuhn.de/go/imgpdf/prepare"
)

// embedder writes the image XObject for one prepared image.
type embedder struct {
	a   *Assembler
	ref pdf.Reference
}

// VisitJPEG embeds a JPEG file using the DCTDecode filter.
func (e *embedder) VisitJPEG(im *prepare.JPEG) error {
	info := im.Info
	cs, err := e.a.colorSpace(info.Components, info.ICCProfile)
	if err != nil {
		return err
	}

	dict := imageDict(info.Width, info.Height, cs, 8)
	dict["Filter"] = pdf.Name("DCTDecode")
	if info.InvertCMYK() {
		dict["Decode"] = pdf.Array{
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
		}
	}
	e.ref = e.a.doc.Add(&pdf.Stream{Dict: dict, Data: im.Data})
	return nil
}

// VisitPNG embeds the IDAT data of a PNG file.  The PNG predictor
// parameters let the PDF reader undo the row filters of the PNG format.
func (e *embedder) VisitPNG(im *prepare.PNG) error {
	info := im.Info

	colors := 3
	if info.ColorType == header.ColorGray || info.ColorType == header.ColorPalette {
		colors = 1
	}

	var cs pdf.Object
	var err error
	if info.ColorType == header.ColorPalette {
		cs, err = e.a.indexedSpace(info.Palette, info.ICCProfile)
	} else {
		cs, err = e.a.colorSpace(colors, info.ICCProfile)
	}
	if err != nil {
		return err
	}

	dict := imageDict(info.Width, info.Height, cs, info.BitDepth)
	dict["Filter"] = pdf.Name("FlateDecode")
	dict["DecodeParms"] = pdf.Dict{
		"Predictor":        pdf.Integer(15),
		"Colors":           pdf.Integer(colors),
		"BitsPerComponent": pdf.Integer(info.BitDepth),
		"Columns":          pdf.Integer(info.Width),
	}
	e.ref = e.a.doc.Add(&pdf.Stream{Dict: dict, Data: info.IDAT})
	return nil
}

// VisitRecompressed embeds re-compressed pixel data.  An alpha channel
// becomes a separate soft mask image.
func (e *embedder) VisitRecompressed(im *prepare.Recompressed) error {
	cs, err := e.a.colorSpace(im.Channels, im.Profile)
	if err != nil {
		return err
	}

	dict := imageDict(im.Width, im.Height, cs, 8)
	dict["Filter"] = pdf.Name("FlateDecode")
	if im.Alpha != nil {
		maskDict := imageDict(im.Width, im.Height, pdf.Name("DeviceGray"), 8)
		maskDict["Filter"] = pdf.Name("FlateDecode")
		dict["SMask"] = e.a.doc.Add(&pdf.Stream{Dict: maskDict, Data: im.Alpha})
	}
	e.ref = e.a.doc.Add(&pdf.Stream{Dict: dict, Data: im.Color})
	return nil
}

func imageDict(width, height int, cs pdf.Object, bpc int) pdf.Dict {
	return pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(width),
		"Height":           pdf.Integer(height),
		"ColorSpace":       cs,
		"BitsPerComponent": pdf.Integer(bpc),
	}
}

func deviceSpace(channels int) pdf.Name {
	switch channels {
	case 1:
		return "DeviceGray"
	case 4:
		return "DeviceCMYK"
	default:
		return "DeviceRGB"
	}
}

// colorSpace returns the color space for image data with the given number
// of channels.  An ICC profile is used if it is valid and matches the
// channel count, otherwise the corresponding device color space is used.
func (a *Assembler) colorSpace(channels int, profile []byte) (pdf.Object, error) {
	device := deviceSpace(channels)
	if len(profile) == 0 || iccComponents(profile) != channels {
		return device, nil
	}

	ref, ok := a.iccCache[string(profile)]
	if !ok {
		data, err := deflate.Bytes(profile)
		if err != nil {
			return nil, imgpdf.Errorf(imgpdf.EncodeError, "compressing ICC profile: %w", err)
		}
		ref = a.doc.Add(&pdf.Stream{
			Dict: pdf.Dict{
				"N":         pdf.Integer(channels),
				"Alternate": device,
				"Filter":    pdf.Name("FlateDecode"),
			},
			Data: data,
		})
		a.iccCache[string(profile)] = ref
	}
	return pdf.Array{pdf.Name("ICCBased"), ref}, nil
}

// indexedSpace returns an Indexed color space for a PNG palette.
// The palette is stored as a hexadecimal string, and the highest valid
// index is one less than the number of palette entries.
func (a *Assembler) indexedSpace(palette, profile []byte) (pdf.Object, error) {
	n := len(palette) / 3
	if n == 0 {
		return nil, imgpdf.Errorf(imgpdf.MalformedHeader, "empty PNG palette")
	}
	base, err := a.colorSpace(3, profile)
	if err != nil {
		return nil, err
	}
	return pdf.Array{
		pdf.Name("Indexed"),
		base,
		pdf.Integer(n - 1),
		pdf.HexString(palette[:3*n]),
	}, nil
}

// iccComponents returns the number of color components of an ICC profile,
// or 0 if the profile cannot be decoded.
func iccComponents(profile []byte) int {
	// icc.Decode clears header fields while checking the profile ID
	p, err := icc.Decode(bytes.Clone(profile))
	if err != nil {
		return 0
	}
	switch p.ColorSpace {
	case icc.GraySpace, icc.RGBSpace, icc.CMYKSpace:
		return p.ColorSpace.NumComponents()
	}
	return 0
}
