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

// Imgpdf converts between raster images and PDF files.
//
// Usage:
//
//	imgpdf merge [flags] IMAGE|DIR...
//	imgpdf split [flags] INPUT.pdf
//	imgpdf completion SHELL
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/internal/buildinfo"
	"seehuhn.de/go/imgpdf/internal/profile"
)

// globalFlags holds the flags shared by all sub-commands.
type globalFlags struct {
	threads    int
	quiet      bool
	cpuprofile string
	memprofile string
}

func main() {
	g := &globalFlags{}
	var stop func() error

	root := &cobra.Command{
		Use:           "imgpdf",
		Short:         "Convert between raster images and PDF files",
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.threads < 1 {
				return fmt.Errorf("invalid thread count %d", g.threads)
			}
			var err error
			stop, err = profile.Start(g.cpuprofile, g.memprofile)
			return err
		},
	}
	flags := root.PersistentFlags()
	flags.IntVarP(&g.threads, "threads", "j", runtime.NumCPU(), "number of parallel workers")
	flags.BoolVarP(&g.quiet, "quiet", "q", false, "suppress progress output")
	flags.StringVar(&g.cpuprofile, "cpuprofile", "", "write CPU profile to `file`")
	flags.StringVar(&g.memprofile, "memprofile", "", "write memory profile to `file`")

	root.AddCommand(newMergeCmd(g), newSplitCmd(g))

	err := root.Execute()
	if stop != nil {
		if stopErr := stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err to w.  For batch errors, every failure is listed
// first.  This output is not affected by --quiet.
func reportError(w io.Writer, err error) {
	var batch *imgpdf.BatchError
	if errors.As(err, &batch) {
		for _, line := range batch.Lines() {
			fmt.Fprintf(w, "  error: %s\n", line)
		}
	}
	fmt.Fprintln(w, "error:", err)
}

// logger returns the progress logger for a command.
func (g *globalFlags) logger() *log.Logger {
	if g.quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", 0)
}
