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

package main

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/paper"
)

const (
	minDPI = 72
	maxDPI = 2400
)

func checkDPI(dpi int) error {
	if dpi < minDPI || dpi > maxDPI {
		return imgpdf.Errorf(imgpdf.ValidationError,
			"DPI %d out of range %d-%d", dpi, minDPI, maxDPI)
	}
	return nil
}

// pageSizeValue is a pflag.Value for the --pagesize flag.
type pageSizeValue struct {
	size *paper.Size
}

var _ pflag.Value = (*pageSizeValue)(nil)

func (v *pageSizeValue) String() string {
	if v.size == nil {
		return ""
	}
	return v.size.Name
}

func (v *pageSizeValue) Set(s string) error {
	size, err := paper.Parse(s)
	if err != nil {
		return err
	}
	v.size = &size
	return nil
}

func (v *pageSizeValue) Type() string {
	return strings.Join(paper.Names(), "|")
}

// checkStdout refuses to write binary data to a terminal.
func checkStdout() error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return imgpdf.Errorf(imgpdf.ValidationError,
			"refusing to write binary output to a terminal")
	}
	return nil
}
