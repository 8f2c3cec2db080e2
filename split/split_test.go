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

package split

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/imgpdf"
)

// fakeDoc renders page i as a (i+1)×2 pixel image.
type fakeDoc struct {
	numPages int
	fail     map[int]bool
	opened   atomic.Int32
	closed   atomic.Int32
}

func (d *fakeDoc) open(path string) (Renderer, error) {
	d.opened.Add(1)
	return &fakeRenderer{doc: d}, nil
}

type fakeRenderer struct {
	doc *fakeDoc
}

func (r *fakeRenderer) NumPage() int {
	return r.doc.numPages
}

func (r *fakeRenderer) Render(i int, dpi float64) (image.Image, error) {
	if i < 0 || i >= r.doc.numPages {
		return nil, fmt.Errorf("no page %d", i)
	}
	if r.doc.fail[i] {
		return nil, imgpdf.Errorf(imgpdf.EncodeError, "cannot render")
	}
	img := image.NewRGBA(image.Rect(0, 0, i+1, 2))
	for x := range i + 1 {
		img.Set(x, 0, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		img.Set(x, 1, color.RGBA{R: 10, G: 10, B: 200, A: 255})
	}
	return img, nil
}

func (r *fakeRenderer) Close() error {
	r.doc.closed.Add(1)
	return nil
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestRunAllPages(t *testing.T) {
	dir := t.TempDir()
	doc := &fakeDoc{numPages: 4}
	var logBuf bytes.Buffer
	opt := &Options{
		Workers: 2,
		Open:    doc.open,
		Logger:  log.New(&logBuf, "", 0),
	}
	err := Run(filepath.Join(dir, "scan.pdf"), dir, opt)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"scan_0001.png", "scan_0002.png", "scan_0003.png", "scan_0004.png"}
	if d := cmp.Diff(want, listDir(t, dir)); d != "" {
		t.Errorf("unexpected files (-want +got):\n%s", d)
	}
	for i, name := range want {
		fd, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(fd)
		fd.Close()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Width != i+1 || cfg.Height != 2 {
			t.Errorf("%s: size %dx%d", name, cfg.Width, cfg.Height)
		}
	}

	// one document for the page count, one per chunk
	if n := doc.opened.Load(); n != 3 {
		t.Errorf("document opened %d times, want 3", n)
	}
	if doc.opened.Load() != doc.closed.Load() {
		t.Errorf("%d opened, %d closed", doc.opened.Load(), doc.closed.Load())
	}

	msg := logBuf.String()
	if !strings.HasPrefix(msg, "Splitting "+filepath.Join(dir, "scan.pdf")+" (4 pages) at 300 DPI") {
		t.Errorf("unexpected log start: %q", msg)
	}
	if !strings.Contains(msg, "Done. 4 images in ") {
		t.Errorf("missing summary line: %q", msg)
	}
}

func TestRunSelectedPages(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "new", "dir")
	doc := &fakeDoc{numPages: 12}
	opt := &Options{
		Pages:  "2,10-11",
		Format: JPEG,
		Open:   doc.open,
	}
	err := Run(filepath.Join(in, "book.pdf"), out, opt)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"book_0002.jpg", "book_0010.jpg", "book_0011.jpg"}
	if d := cmp.Diff(want, listDir(t, out)); d != "" {
		t.Errorf("unexpected files (-want +got):\n%s", d)
	}
	fd, err := os.Open(filepath.Join(out, "book_0010.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	cfg, err := jpeg.DecodeConfig(fd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 10 || cfg.Height != 2 {
		t.Errorf("size %dx%d, want 10x2", cfg.Width, cfg.Height)
	}
}

func TestRunDefaultOutputDir(t *testing.T) {
	dir := t.TempDir()
	doc := &fakeDoc{numPages: 1}
	err := Run(filepath.Join(dir, "x.pdf"), "", &Options{Open: doc.open})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"x_0001.png"}, listDir(t, dir)); d != "" {
		t.Errorf("unexpected files (-want +got):\n%s", d)
	}
}

func TestRunGray(t *testing.T) {
	var buf bytes.Buffer
	doc := &fakeDoc{numPages: 3}
	opt := &Options{
		Gray:        true,
		Pages:       "3",
		Compression: Small,
		Open:        doc.open,
		Stdout:      &buf,
	}
	err := Run("in.pdf", Stdout, opt)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("got %T, want *image.Gray", img)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("size %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}

func TestRunStdoutNeedsOnePage(t *testing.T) {
	var buf bytes.Buffer
	doc := &fakeDoc{numPages: 3}
	err := Run("in.pdf", Stdout, &Options{Open: doc.open, Stdout: &buf})
	if imgpdf.KindOf(err) != imgpdf.ValidationError {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written", buf.Len())
	}
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	doc := &fakeDoc{numPages: 5, fail: map[int]bool{1: true, 3: true}}
	var logBuf bytes.Buffer
	opt := &Options{
		Workers: 3,
		Open:    doc.open,
		Logger:  log.New(&logBuf, "", 0),
	}
	err := Run(filepath.Join(dir, "doc.pdf"), dir, opt)

	var batch *imgpdf.BatchError
	if !errors.As(err, &batch) {
		t.Fatalf("expected a batch error, got %v", err)
	}
	if batch.Unit != "page" || len(batch.Failures) != 2 {
		t.Fatalf("unexpected failures: %v", batch)
	}
	if batch.Failures[0].Index != 1 || batch.Failures[1].Index != 3 {
		t.Errorf("wrong pages: %d, %d", batch.Failures[0].Index, batch.Failures[1].Index)
	}
	if !strings.Contains(err.Error(), "page 2") || !strings.Contains(err.Error(), "2 total failures") {
		t.Errorf("unexpected message: %q", err)
	}
	if imgpdf.KindOf(err) != imgpdf.EncodeError {
		t.Errorf("wrong kind: %v", imgpdf.KindOf(err))
	}
	if strings.Contains(logBuf.String(), "Done.") {
		t.Errorf("failed run logged completion: %q", logBuf.String())
	}

	// the pages which could be rendered are still written
	want := []string{"doc_0001.png", "doc_0003.png", "doc_0005.png"}
	if d := cmp.Diff(want, listDir(t, dir)); d != "" {
		t.Errorf("unexpected files (-want +got):\n%s", d)
	}
}

func TestRunOpenError(t *testing.T) {
	open := func(string) (Renderer, error) {
		return nil, imgpdf.Errorf(imgpdf.IOError, "no such file")
	}
	err := Run("missing.pdf", t.TempDir(), &Options{Open: open})
	if imgpdf.KindOf(err) != imgpdf.IOError {
		t.Errorf("expected an I/O error, got %v", err)
	}
}

func TestFormatFlags(t *testing.T) {
	var f Format
	if err := f.Set("JPG"); err != nil || f != JPEG {
		t.Errorf("Set(JPG): %v, %v", f, err)
	}
	if err := f.Set("gif"); imgpdf.KindOf(err) != imgpdf.ValidationError {
		t.Errorf("Set(gif): %v", err)
	}

	var c Compression
	if err := c.Set("small"); err != nil || c != Small {
		t.Errorf("Set(small): %v, %v", c, err)
	}
	if err := c.Set("best"); err == nil {
		t.Error("Set(best) succeeded")
	}
	if c.String() != "small" {
		t.Errorf("String() = %q", c.String())
	}
}
