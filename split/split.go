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

// Package split renders the pages of a PDF file to image files.
//
// Pages are divided into one chunk per worker.  Each worker opens its own
// copy of the document and renders its pages in order.  Failures are
// collected per page and reported together once all workers are done.
package split

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/imgpdf"
)

// Stdout is the output name which selects standard output.
const Stdout = "-"

// DefaultDPI is the rendering resolution used when Options.DPI is zero.
const DefaultDPI = 300

// Options control a split run.
type Options struct {
	Format      Format
	Compression Compression

	// Quality is the JPEG quality, between 1 and 100.
	// If this is zero, DefaultQuality is used.
	Quality int

	// DPI is the rendering resolution.
	// If this is zero, DefaultDPI is used.
	DPI float64

	// Gray selects grayscale output.
	Gray bool

	// Pages selects the pages to render, for example "1,3-5".
	// If this is empty, all pages are rendered.
	Pages string

	// Workers is the maximum number of pages rendered concurrently.
	// If this is zero, runtime.NumCPU() is used.
	Workers int

	// Logger receives progress messages.  If this is nil, nothing is
	// logged.
	Logger *log.Logger

	// Stdout is used when the output name is "-".
	// If this is nil, os.Stdout is used.
	Stdout io.Writer

	// Open opens the input document.
	// If this is nil, OpenFitz is used.
	Open OpenFunc
}

// Run renders the pages of the PDF file input.
//
// If output is empty, the images are written next to the input file.
// If output is "-", exactly one page must be selected and the image is
// written to standard output.  Otherwise, output names the directory for
// the image files, which is created if needed.  Image files are named
// <stem>_<NNNN>.<ext>, where NNNN is the 1-based page number.
func Run(input, output string, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	open := opt.Open
	if open == nil {
		open = OpenFitz
	}
	dpi := opt.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	if opt.Quality < 0 || opt.Quality > 100 {
		return imgpdf.Errorf(imgpdf.ValidationError,
			"JPEG quality %d out of range 1-100", opt.Quality)
	}

	numPages, err := countPages(open, input)
	if err != nil {
		return err
	}

	var pages []int
	if opt.Pages != "" {
		pages, err = ParsePageRanges(opt.Pages, numPages)
		if err != nil {
			return err
		}
	} else {
		for i := range numPages {
			pages = append(pages, i)
		}
	}
	if len(pages) == 0 {
		return imgpdf.WithPath(input,
			imgpdf.Errorf(imgpdf.ValidationError, "document has no pages"))
	}

	if output == Stdout {
		if len(pages) != 1 {
			return imgpdf.Errorf(imgpdf.ValidationError,
				"stdout output requires exactly one page (got %d), use --pages to select one",
				len(pages))
		}
		w := opt.Stdout
		if w == nil {
			w = os.Stdout
		}
		return renderToWriter(open, input, pages[0], dpi, newEncoder(opt), w)
	}

	if output == "" {
		output = filepath.Dir(input)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return imgpdf.WithPath(output, imgpdf.Wrap(imgpdf.IOError, err))
	}

	if opt.Pages != "" {
		logger.Printf("Splitting %s (%d of %d page%s) at %g DPI -> %s",
			input, len(pages), numPages, plural(numPages), dpi, output)
	} else {
		logger.Printf("Splitting %s (%d page%s) at %g DPI -> %s",
			input, numPages, plural(numPages), dpi, output)
	}
	start := time.Now()

	j := &job{
		input:  input,
		outDir: output,
		stem:   fileStem(input),
		dpi:    dpi,
		opt:    opt,
		open:   open,
		logger: logger,
		total:  len(pages),
	}
	errs := j.run(pages)

	batch := &imgpdf.BatchError{Unit: "page"}
	for k, err := range errs {
		if err != nil {
			batch.Failures = append(batch.Failures, imgpdf.Failure{
				Index: pages[k],
				Path:  j.fileName(pages[k]),
				Err:   err,
			})
		}
	}
	if len(batch.Failures) > 0 {
		return batch
	}

	logger.Printf("Done. %d images in %.2fs", len(pages), time.Since(start).Seconds())
	return nil
}

func countPages(open OpenFunc, input string) (int, error) {
	r, err := open(input)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return r.NumPage(), nil
}

func renderToWriter(open OpenFunc, input string, page int, dpi float64, enc *encoder, w io.Writer) error {
	r, err := open(input)
	if err != nil {
		return err
	}
	defer r.Close()

	img, err := r.Render(page, dpi)
	if err != nil {
		return fmt.Errorf("page %d: %w", page+1, err)
	}
	return enc.Encode(w, img)
}

type job struct {
	input  string
	outDir string
	stem   string
	dpi    float64
	opt    *Options
	open   OpenFunc
	logger *log.Logger

	total int
	done  atomic.Int64
}

// run renders the given pages.  The error for pages[k] is stored at
// index k of the result.
func (j *job) run(pages []int) []error {
	workers := j.opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunkSize := (len(pages) + workers - 1) / workers

	errs := make([]error, len(pages))
	var g errgroup.Group
	for lo := 0; lo < len(pages); lo += chunkSize {
		hi := min(lo+chunkSize, len(pages))
		g.Go(func() error {
			j.renderChunk(pages[lo:hi], errs[lo:hi])
			return nil
		})
	}
	g.Wait()
	return errs
}

func (j *job) renderChunk(pages []int, errs []error) {
	r, err := j.open(j.input)
	if err != nil {
		for k := range errs {
			errs[k] = err
		}
		return
	}
	defer r.Close()

	enc := newEncoder(j.opt)
	for k, page := range pages {
		errs[k] = j.renderPage(r, enc, page)
	}
}

func (j *job) renderPage(r Renderer, enc *encoder, page int) error {
	img, err := r.Render(page, j.dpi)
	if err != nil {
		return err
	}

	name := j.fileName(page)
	outPath := filepath.Join(j.outDir, name)
	if err := writeImage(outPath, enc, img); err != nil {
		return err
	}

	done := j.done.Add(1)
	j.logger.Printf("  [%d/%d] %s", done, j.total, name)
	return nil
}

func (j *job) fileName(page int) string {
	return fmt.Sprintf("%s_%04d.%s", j.stem, page+1, j.opt.Format.Ext())
}

func writeImage(name string, enc *encoder, img image.Image) (err error) {
	fd, err := os.Create(name)
	if err != nil {
		return imgpdf.WithPath(name, imgpdf.Wrap(imgpdf.IOError, err))
	}
	defer func() {
		closeErr := fd.Close()
		if err == nil && closeErr != nil {
			err = imgpdf.WithPath(name, imgpdf.Wrap(imgpdf.IOError, closeErr))
		}
		if err != nil {
			os.Remove(name)
		}
	}()
	return enc.Encode(fd, img)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "page"
	}
	return stem
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
