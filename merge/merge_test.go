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

package merge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/imgpdf"
	"seehuhn.de/go/imgpdf/pdf"
	"seehuhn.de/go/imgpdf/prepare"
)

// writePNG writes an opaque RGB image of the given width to dir.
func writePNG(t *testing.T, dir, name string, width int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, 3))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{R: 10, A: 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// pageWidths returns the /Width of the image on each page.
func pageWidths(t *testing.T, doc *pdf.Document) []int {
	t.Helper()
	catalog := doc.Get(doc.Catalog).(pdf.Dict)
	tree := doc.Get(catalog["Pages"].(pdf.Reference)).(pdf.Dict)
	var res []int
	for _, kid := range tree["Kids"].(pdf.Array) {
		page := doc.Get(kid.(pdf.Reference)).(pdf.Dict)
		resources := doc.Get(page["Resources"].(pdf.Reference)).(pdf.Dict)
		xobj := resources["XObject"].(pdf.Dict)
		img := doc.Get(xobj["Im0"].(pdf.Reference)).(*pdf.Stream)
		res = append(res, int(img.Dict["Width"].(pdf.Integer)))
		if img.Dict["ColorSpace"] != pdf.Name("DeviceRGB") {
			t.Errorf("color space %v", img.Dict["ColorSpace"])
		}
		if img.Dict["Filter"] != pdf.Name("FlateDecode") {
			t.Errorf("filter %v", img.Dict["Filter"])
		}
	}
	return res
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for i := 1; i <= 4; i++ {
		inputs = append(inputs, writePNG(t, dir, fmt.Sprintf("img%d.png", i), i))
	}
	out := filepath.Join(dir, "out.pdf")

	logBuf := &bytes.Buffer{}
	opt := &Options{Workers: 2, Logger: log.New(logBuf, "", 0)}
	if err := Run(inputs, out, opt); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.5\n")) {
		t.Error("missing PDF header")
	}
	if !bytes.Contains(data, []byte("/Count 4")) {
		t.Error("wrong page count")
	}

	logText := logBuf.String()
	for _, want := range []string{"Merging 4 image(s)", "[1/4]", "[4/4]", "Done."} {
		if !strings.Contains(logText, want) {
			t.Errorf("log does not contain %q:\n%s", want, logText)
		}
	}
}

func TestBuildOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 1; i <= 6; i++ {
		paths = append(paths, writePNG(t, dir, fmt.Sprintf("%d.png", i), i))
	}

	// earlier images finish later
	opt := &Options{
		Workers: 6,
		prepareFunc: func(path string) (prepare.Image, error) {
			n := strings.TrimSuffix(filepath.Base(path), ".png")
			delay := 7 - int(n[0]-'0')
			time.Sleep(time.Duration(delay) * 5 * time.Millisecond)
			return prepare.File(path)
		},
	}
	doc, err := Build(paths, opt)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(pageWidths(t, doc), []int{1, 2, 3, 4, 5, 6}); d != "" {
		t.Errorf("page order (-got +want):\n%s", d)
	}
}

func TestFailureAggregation(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for i := 1; i <= 5; i++ {
		inputs = append(inputs, writePNG(t, dir, fmt.Sprintf("img%d.png", i), 10))
	}
	// corrupt image 2
	if err := os.WriteFile(inputs[1], []byte("\x89PNG\r\n\x1a\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.pdf")

	logBuf := &bytes.Buffer{}
	err := Run(inputs, out, &Options{Logger: log.New(logBuf, "", 0)})
	var batch *imgpdf.BatchError
	if !errors.As(err, &batch) {
		t.Fatalf("got %v, want a batch error", err)
	}
	if len(batch.Failures) != 1 || batch.Failures[0].Index != 1 {
		t.Fatalf("got failures %v", batch.Failures)
	}
	if !strings.Contains(err.Error(), "image 2") || !strings.Contains(err.Error(), "1 total failure") {
		t.Errorf("unexpected message %q", err)
	}
	if strings.Contains(logBuf.String(), "Done.") {
		t.Errorf("failed run logged completion:\n%s", logBuf.String())
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "img") {
			t.Errorf("unexpected file %q", e.Name())
		}
	}
}

func TestMissingInput(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for i := 1; i <= 5; i++ {
		inputs = append(inputs, writePNG(t, dir, fmt.Sprintf("img%d.png", i), 10))
	}
	inputs[1] = filepath.Join(dir, "missing.png")
	out := filepath.Join(dir, "out.pdf")

	err := Run(inputs, out, &Options{Workers: 2})
	var batch *imgpdf.BatchError
	if !errors.As(err, &batch) {
		t.Fatalf("got %v, want a batch error", err)
	}
	if len(batch.Failures) != 1 || batch.Failures[0].Index != 1 {
		t.Fatalf("got failures %v", batch.Failures)
	}
	if batch.Failures[0].Path != inputs[1] {
		t.Errorf("failure path %q", batch.Failures[0].Path)
	}
	if k := imgpdf.KindOf(err); k != imgpdf.IOError {
		t.Errorf("got error kind %v, want %v", k, imgpdf.IOError)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("output file was written")
	}
}

func TestExpandPathsKeepsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.png")
	got, err := ExpandPaths([]string{missing})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(got, []string{missing}); d != "" {
		t.Errorf("ExpandPaths (-got +want):\n%s", d)
	}
}

func TestStdout(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "a.png", 5)
	buf := &bytes.Buffer{}
	if err := Run([]string{in}, Stdout, &Options{Stdout: buf}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("no PDF written to stdout")
	}
	if _, err := os.Stat(filepath.Join(dir, "-")); err == nil {
		t.Error("file named - was created")
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "c.txt", "d.TIFF", "e.gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	single := filepath.Join(dir, "c.txt")

	got, err := ExpandPaths([]string{single, dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		single,
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "d.TIFF"),
		filepath.Join(dir, "e.gif"),
	}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("ExpandPaths (-got +want):\n%s", d)
	}
}

func TestExpandPathsErrors(t *testing.T) {
	empty := t.TempDir()
	cases := []struct {
		name   string
		inputs []string
		want   imgpdf.Kind
	}{
		{"no inputs", nil, imgpdf.ValidationError},
		{"empty dir", []string{empty}, imgpdf.ValidationError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ExpandPaths(c.inputs)
			if k := imgpdf.KindOf(err); k != c.want {
				t.Errorf("got %v (%v), want %v", k, err, c.want)
			}
		})
	}
}
