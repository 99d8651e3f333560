// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bytebuf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrNegativeOffset is returned by [Buffer.WriteAt] for offsets below
// zero.
var ErrNegativeOffset = errors.New("bytebuf: negative offset")

// Buffer is a growable byte sequence with a write cursor. The zero
// value is an empty buffer ready to use.
type Buffer struct {
	data   []byte
	cursor int
	marks  []*Mark
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Cursor returns the current write offset. The cursor may be beyond
// Len; the next write zero-fills the gap.
func (b *Buffer) Cursor() int { return b.cursor }

// Seek moves the write cursor to offset. Seeking to a negative offset
// panics.
func (b *Buffer) Seek(offset int) {
	if offset < 0 {
		panic(fmt.Sprintf("bytebuf: seek to negative offset %d", offset))
	}
	b.cursor = offset
}

// Bytes returns the buffer contents. The slice aliases the buffer and
// is only valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.data }

// Write writes p at the cursor and advances the cursor past it. Write
// never fails; the error return satisfies [io.Writer].
func (b *Buffer) Write(p []byte) (int, error) {
	b.put(b.cursor, p)
	b.cursor += len(p)
	return len(p), nil
}

// WriteByte writes a single byte at the cursor.
func (b *Buffer) WriteByte(c byte) error {
	if b.cursor == len(b.data) {
		b.data = append(b.data, c)
	} else {
		b.ensure(b.cursor + 1)
		b.data[b.cursor] = c
	}
	b.cursor++
	return nil
}

// WriteUint16 writes v little-endian at the cursor.
func (b *Buffer) WriteUint16(v uint16) {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], v)
	b.Write(scratch[:])
}

// WriteUint32 writes v little-endian at the cursor.
func (b *Buffer) WriteUint32(v uint32) {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	b.Write(scratch[:])
}

// WriteAt writes p at offset without moving the cursor, extending the
// buffer when the write ends past Len. It implements [io.WriterAt].
func (b *Buffer) WriteAt(p []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, ErrNegativeOffset
	}
	b.put(int(offset), p)
	return len(p), nil
}

// ReadSlice returns a copy of length bytes starting at offset. Reading
// outside the buffer panics.
func (b *Buffer) ReadSlice(offset, length int) []byte {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		panic(fmt.Sprintf("bytebuf: read [%d, %d) outside buffer of %d bytes",
			offset, offset+length, len(b.data)))
	}
	out := make([]byte, length)
	copy(out, b.data[offset:offset+length])
	return out
}

// Resize sets the buffer length to size, zero-filling on growth and
// truncating on shrink. Marks beyond the new end are invalidated. The
// cursor is left where it was.
func (b *Buffer) Resize(size int) {
	if size < 0 {
		panic(fmt.Sprintf("bytebuf: resize to negative size %d", size))
	}
	if size <= len(b.data) {
		clear(b.data[size:])
		b.data = b.data[:size]
		b.invalidateBeyond(size)
		return
	}
	b.ensure(size)
}

// Shift moves the range [start, start+length) by delta bytes (negative
// moves left) and resizes the buffer so it ends where the moved range
// now ends. Overlapping moves copy in the direction that preserves the
// source. When shifting right, the vacated bytes before the moved
// range are zeroed.
//
// Live marks inside the moved range move with it. Marks in bytes the
// shift overwrote or truncated are invalidated.
func (b *Buffer) Shift(start, length, delta int) {
	if start < 0 || length < 0 || start+length > len(b.data) {
		panic(fmt.Sprintf("bytebuf: shift source [%d, %d) outside buffer of %d bytes",
			start, start+length, len(b.data)))
	}
	destination := start + delta
	if destination < 0 {
		panic(fmt.Sprintf("bytebuf: shift of [%d, %d) by %d moves before start of buffer",
			start, start+length, delta))
	}
	end := destination + length

	b.ensure(end)
	copy(b.data[destination:end], b.data[start:start+length])
	if delta > 0 {
		clear(b.data[start:min(destination, start+length)])
	}
	b.data = b.data[:end]

	b.adjustMarks(start, length, delta)
}

// Reset empties the buffer, rewinds the cursor, and invalidates every
// mark.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.cursor = 0
	for _, mark := range b.marks {
		mark.valid = false
	}
	b.marks = b.marks[:0]
}

// put copies p into the buffer at offset, growing it as needed.
func (b *Buffer) put(offset int, p []byte) {
	if offset == len(b.data) {
		b.data = append(b.data, p...)
		return
	}
	b.ensure(offset + len(p))
	copy(b.data[offset:], p)
}

// ensure grows the buffer to at least size bytes. New bytes are zero.
func (b *Buffer) ensure(size int) {
	if size <= len(b.data) {
		return
	}
	if size <= cap(b.data) {
		previous := len(b.data)
		b.data = b.data[:size]
		clear(b.data[previous:])
		return
	}
	b.data = append(b.data, make([]byte, size-len(b.data))...)
}
