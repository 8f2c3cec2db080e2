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

	"seehuhn.de/go/imgpdf/internal/buildinfo"
	"seehuhn.de/go/imgpdf/merge"
)

func newMergeCmd(g *globalFlags) *cobra.Command {
	var (
		output   string
		dpi      int
		title    string
		author   string
		pageSize pageSizeValue
	)

	cmd := &cobra.Command{
		Use:   "merge [flags] IMAGE|DIR...",
		Short: "Combine images into a PDF file, one page per image",
		Long: `Combine images into a PDF file, one page per image.

Directories are replaced by the image files they contain, in sorted order.
JPEG and most PNG files are embedded without recompression.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := &merge.Options{
				Workers: g.threads,
				Logger:  g.logger(),
			}
			if cmd.Flags().Changed("dpi") {
				if err := checkDPI(dpi); err != nil {
					return err
				}
				opt.DPI = float64(dpi)
			}
			opt.PageSize = pageSize.size
			opt.Title = title
			opt.Author = author
			opt.Producer = buildinfo.Producer()

			if output == merge.Stdout {
				if err := checkStdout(); err != nil {
					return err
				}
			}
			return merge.Run(args, output, opt)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "output.pdf", "output `file`, or \"-\" for stdout")
	flags.IntVarP(&dpi, "dpi", "d", 300, "resolution for all images, overriding the resolution stored in the files")
	flags.StringVar(&title, "title", "", "document title")
	flags.StringVar(&author, "author", "", "document author")
	flags.Var(&pageSize, "pagesize", "fit images onto fixed-size pages")

	return cmd
}
