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

package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentArena(t *testing.T) {
	d := NewDocument()
	parent := d.Alloc()
	child := d.Add(Dict{"Parent": parent})
	if parent != 1 || child != 2 {
		t.Fatalf("got references %d, %d, want 1, 2", parent, child)
	}
	if d.Get(parent) != nil {
		t.Error("reserved object is not nil")
	}

	err := d.Set(parent, Dict{"Kids": Array{child}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Set(parent, Dict{}); err == nil {
		t.Error("setting an object twice succeeded")
	}
	if err := d.Set(child, Dict{}); err == nil {
		t.Error("replacing an added object succeeded")
	}
	if err := d.Set(99, Dict{}); err == nil {
		t.Error("setting an unknown reference succeeded")
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestWriteUnsetObject(t *testing.T) {
	d := NewDocument()
	d.Catalog = d.Add(Dict{"Type": Name("Catalog")})
	d.Alloc()
	_, err := d.WriteTo(&bytes.Buffer{})
	if err == nil {
		t.Error("document with unset object was written")
	}
}

func TestWriteMissingCatalog(t *testing.T) {
	d := NewDocument()
	d.Add(Integer(1))
	_, err := d.WriteTo(&bytes.Buffer{})
	if err == nil {
		t.Error("document without catalog was written")
	}
}

func TestWriteXRef(t *testing.T) {
	d := NewDocument()
	pages := d.Alloc()
	d.Catalog = d.Add(Dict{"Type": Name("Catalog"), "Pages": pages})
	d.Info = d.Add(Dict{"Producer": TextString("test")})
	err := d.Set(pages, Dict{"Type": Name("Pages"), "Kids": Array{}, "Count": Integer(0)})
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	n, err := d.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, wrote %d bytes", n, buf.Len())
	}
	body := buf.Bytes()

	if !bytes.HasPrefix(body, []byte("%PDF-1.5\n")) {
		t.Errorf("wrong header %q", body[:10])
	}
	if !bytes.HasSuffix(body, []byte("%%EOF\n")) {
		t.Error("missing end-of-file marker")
	}

	// every xref entry must point at the matching "n 0 obj" line
	m := regexp.MustCompile(`(?s)startxref\n(\d+)\n`).FindSubmatch(body)
	if m == nil {
		t.Fatal("missing startxref")
	}
	xrefPos, _ := strconv.Atoi(string(m[1]))
	xref := string(body[xrefPos:])
	if !strings.HasPrefix(xref, "xref\n0 4\n") {
		t.Fatalf("startxref does not point at xref table: %q", xref[:20])
	}
	lines := strings.Split(xref, "\r\n")
	var got []string
	for i := 1; i <= 3; i++ {
		pos, err := strconv.Atoi(lines[i][:10])
		if err != nil {
			t.Fatal(err)
		}
		line, _, _ := strings.Cut(string(body[pos:]), "\n")
		got = append(got, line)
	}
	var want []string
	for i := 1; i <= 3; i++ {
		want = append(want, fmt.Sprintf("%d 0 obj", i))
	}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("xref mismatch (-got +want):\n%s", d)
	}

	if !bytes.Contains(body, []byte("/Root 2 0 R")) || !bytes.Contains(body, []byte("/Info 3 0 R")) {
		t.Error("trailer does not reference catalog and info")
	}
	if !bytes.Contains(body, []byte("/Size 4")) {
		t.Error("wrong trailer /Size")
	}
}
