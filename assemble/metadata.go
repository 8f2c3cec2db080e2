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
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/pdf"
)

// pdfNamespace holds the properties of the XMP "pdf" namespace.
type pdfNamespace struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Producer xmp.AgentName
}

// addInfo adds the document information dictionary.
func (a *Assembler) addInfo(created time.Time) pdf.Reference {
	info := pdf.Dict{
		"CreationDate": pdf.Date(created.Unix()),
	}
	if a.opt.Producer != "" {
		info["Producer"] = pdf.TextString(a.opt.Producer)
	}
	if a.opt.Title != "" {
		info["Title"] = pdf.TextString(a.opt.Title)
	}
	if a.opt.Author != "" {
		info["Author"] = pdf.TextString(a.opt.Author)
	}
	return a.doc.Add(info)
}

// addMetadata adds an XMP metadata stream which repeats the information
// from the document information dictionary.
func (a *Assembler) addMetadata(created time.Time) (pdf.Reference, error) {
	dc := &xmp.DublinCore{}
	if a.opt.Title != "" {
		dc.Title.Set(language.Und, a.opt.Title)
	}
	if a.opt.Author != "" {
		dc.Creator.Append(xmp.NewProperName(a.opt.Author))
	}
	basic := &xmp.Basic{}
	basic.CreateDate = xmp.NewDate(created)
	pdfInfo := &pdfNamespace{}
	if a.opt.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(a.opt.Producer)
	}

	packet := xmp.NewPacket()
	if err := packet.Set(dc, basic, pdfInfo); err != nil {
		return 0, imgpdf.Errorf(imgpdf.EncodeError, "XMP metadata: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := packet.Write(buf, nil); err != nil {
		return 0, imgpdf.Errorf(imgpdf.EncodeError, "XMP metadata: %w", err)
	}

	return a.doc.Add(&pdf.Stream{
		Dict: pdf.Dict{
			"Type":    pdf.Name("Metadata"),
			"Subtype": pdf.Name("XML"),
		},
		Data: buf.Bytes(),
	}), nil
}
