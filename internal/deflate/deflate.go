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

// Package deflate provides zlib-compressed buffers for PDF FlateDecode
// streams.  Compressors are recycled through a sync.Pool.
package deflate

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// Level is the compression level used for all streams.
const Level = zlib.BestSpeed

var pool = sync.Pool{
	New: func() any {
		zw, err := zlib.NewWriterLevel(nil, Level)
		if err != nil {
			panic(err) // Level is a valid constant
		}
		return zw
	},
}

// Buffer accumulates compressed data in memory.
// Data is added using Write, and Finish returns the compressed result.
// A Buffer must not be used after Finish has been called.
type Buffer struct {
	buf bytes.Buffer
	zw  *zlib.Writer
}

// NewBuffer returns a new, empty Buffer.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.zw = pool.Get().(*zlib.Writer)
	b.zw.Reset(&b.buf)
	return b
}

// Write compresses p into the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.zw.Write(p)
}

// Finish flushes the compressor and returns the compressed bytes.
func (b *Buffer) Finish() ([]byte, error) {
	err := b.zw.Close()
	b.zw.Reset(io.Discard)
	pool.Put(b.zw)
	b.zw = nil
	if err != nil {
		return nil, err
	}
	return b.buf.Bytes(), nil
}

// Bytes returns the zlib-compressed form of data.
func Bytes(data []byte) ([]byte, error) {
	b := NewBuffer()
	if _, err := b.Write(data); err != nil {
		b.Finish()
		return nil, err
	}
	return b.Finish()
}
