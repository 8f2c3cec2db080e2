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
	"github.com/spf13/cobra"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/split"
)

func newSplitCmd(g *globalFlags) *cobra.Command {
	var (
		output  string
		dpi     int
		quality int
		pages   string
		gray    bool
		format  split.Format
		compr   split.Compression
	)

	cmd := &cobra.Command{
		Use:   "split [flags] INPUT.pdf",
		Short: "Render the pages of a PDF file to images",
		Long: `Render the pages of a PDF file to images.

Images are named <stem>_<NNNN>.<ext> after the input file and the 1-based
page number.  With "-o -", a single selected page is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDPI(dpi); err != nil {
				return err
			}
			if quality < 1 || quality > 100 {
				return imgpdf.Errorf(imgpdf.ValidationError,
					"JPEG quality %d out of range 1-100", quality)
			}
			if output == split.Stdout {
				if err := checkStdout(); err != nil {
					return err
				}
			}

			opt := &split.Options{
				Format:      format,
				Compression: compr,
				Quality:     quality,
				DPI:         float64(dpi),
				Gray:        gray,
				Pages:       pages,
				Workers:     g.threads,
				Logger:      g.logger(),
			}
			return split.Run(args[0], output, opt)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output `directory` (default: next to the input), or \"-\" for stdout")
	flags.VarP(&format, "format", "f", "image format (png or jpg)")
	flags.IntVarP(&dpi, "dpi", "d", split.DefaultDPI, "rendering resolution")
	flags.VarP(&compr, "compress", "c", "PNG compression (fast or small)")
	flags.BoolVar(&gray, "gray", false, "render in grayscale")
	flags.StringVarP(&pages, "pages", "p", "", "pages to render, e.g. \"1,3-5\" (default: all)")
	flags.IntVar(&quality, "quality", split.DefaultQuality, "JPEG quality (1-100)")

	return cmd
}
