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

// Package merge combines image files into a single PDF document.
//
// The work is done in two phases.  First, all images are read and prepared
// concurrently, with results stored by input position.  Once every image
// has been processed, the document is assembled sequentially in input
// order.  If any image fails, all failures are reported and no output is
// written.
package merge

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/assemble"
	"seehuhn.de/go/imgpdf/pdf"
	"seehuhn.de/go/imgpdf/prepare"
)

// Stdout is the output name which selects standard output.
const Stdout = "-"

// Options control a merge run.
type Options struct {
	assemble.Options

	// Workers is the maximum number of images prepared concurrently.
	// If this is zero, runtime.NumCPU() is used.
	Workers int

	// Logger receives progress messages.  If this is nil, nothing is
	// logged.
	Logger *log.Logger

	// Stdout is used when the output name is "-".
	// If this is nil, os.Stdout is used.
	Stdout io.Writer

	// prepareFunc replaces prepare.File in tests.
	prepareFunc func(string) (prepare.Image, error)
}

// Run merges the images named in inputs into a PDF file.
// Directories in inputs are expanded using ExpandPaths.
func Run(inputs []string, output string, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	paths, err := ExpandPaths(inputs)
	if err != nil {
		return err
	}

	logger.Printf("Merging %d image(s) -> %s", len(paths), output)
	start := time.Now()

	doc, err := Build(paths, opt)
	if err != nil {
		return err
	}

	if output == Stdout {
		w := opt.Stdout
		if w == nil {
			w = os.Stdout
		}
		err = writeStream(doc, w)
	} else {
		err = WriteFile(doc, output)
	}
	if err != nil {
		return err
	}

	logger.Printf("Done. PDF saved in %.2fs", time.Since(start).Seconds())
	return nil
}

// Build prepares all images and assembles the document.
//
// Phase one prepares the images concurrently, using at most opt.Workers
// goroutines.  Phase two runs only if every image was prepared
// successfully; otherwise an *imgpdf.BatchError listing all failures is
// returned.
func Build(paths []string, opt *Options) (*pdf.Document, error) {
	if opt == nil {
		opt = &Options{}
	}
	if len(paths) == 0 {
		return nil, imgpdf.Errorf(imgpdf.ValidationError, "no input files")
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	images, err := prepareAll(paths, opt)
	if err != nil {
		return nil, err
	}

	a := assemble.New(&opt.Options)
	for i, im := range images {
		if err := a.AddImage(im); err != nil {
			return nil, imgpdf.WithPath(paths[i], err)
		}
		logger.Printf("  [%d/%d] %s", i+1, len(paths), paths[i])
	}
	return a.Finish()
}

// prepareAll runs phase one.  The result for paths[i] is stored at index i,
// independently of the order in which the workers finish.
func prepareAll(paths []string, opt *Options) ([]prepare.Image, error) {
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	prep := opt.prepareFunc
	if prep == nil {
		prep = prepare.File
	}

	images := make([]prepare.Image, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			images[i], errs[i] = prep(path)
			return nil
		})
	}
	g.Wait()

	batch := &imgpdf.BatchError{Unit: "image"}
	for i, err := range errs {
		if err != nil {
			batch.Failures = append(batch.Failures, imgpdf.Failure{
				Index: i,
				Path:  paths[i],
				Err:   err,
			})
		}
	}
	if len(batch.Failures) > 0 {
		return nil, batch
	}
	return images, nil
}

// WriteFile writes doc to the named file.  The data is first written to a
// temporary file in the same directory, which is renamed once the file is
// complete.  On error, no output file is left behind.
func WriteFile(doc *pdf.Document, name string) (err error) {
	dir := filepath.Dir(name)
	tmp, err := os.CreateTemp(dir, ".imgpdf-*.tmp")
	if err != nil {
		return imgpdf.WithPath(name, imgpdf.Wrap(imgpdf.IOError, err))
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = writeStream(doc, tmp); err != nil {
		return imgpdf.WithPath(name, err)
	}
	if err = tmp.Close(); err != nil {
		return imgpdf.WithPath(name, imgpdf.Wrap(imgpdf.IOError, err))
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return imgpdf.WithPath(name, imgpdf.Wrap(imgpdf.IOError, err))
	}
	if err = os.Rename(tmp.Name(), name); err != nil {
		return imgpdf.WithPath(name, imgpdf.Wrap(imgpdf.IOError, err))
	}
	return nil
}

func writeStream(doc *pdf.Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := doc.WriteTo(bw); err != nil {
		return imgpdf.Wrap(imgpdf.IOError, fmt.Errorf("writing PDF: %w", err))
	}
	if err := bw.Flush(); err != nil {
		return imgpdf.Wrap(imgpdf.IOError, fmt.Errorf("writing PDF: %w", err))
	}
	return nil
}
