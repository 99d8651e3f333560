// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitio

import (
	"fmt"
	"io"
)

// MaxFieldBits is the widest field a single WriteBits call accepts.
const MaxFieldBits = 32

// Writer packs bit fields MSB-first into bytes written to an
// [io.ByteWriter].
//
// The underlying writer's first error is sticky: later fields are
// dropped and the error is reported by [Writer.Err]. Writers over an
// in-memory buffer never fail.
type Writer struct {
	out io.ByteWriter

	// free is the number of bits still unused in pending. 8 means no
	// partial byte is in flight.
	free    uint
	pending uint8

	err error
}

// NewWriter returns a Writer emitting bytes to out.
func NewWriter(out io.ByteWriter) *Writer {
	return &Writer{out: out, free: 8}
}

// WriteBits writes the low count bits of value, high bit first. A
// count above [MaxFieldBits] panics; zero writes nothing.
func (w *Writer) WriteBits(value uint32, count uint) {
	if count > MaxFieldBits {
		panic(fmt.Sprintf("bitio: field of %d bits exceeds %d", count, MaxFieldBits))
	}
	if count == 0 {
		return
	}
	value &= uint32(0xFFFFFFFF) >> (32 - count)

	for {
		if count <= w.free {
			// Fits in the pending byte.
			w.pending |= uint8(value << (w.free - count))
			w.free -= count
			if w.free == 0 {
				w.emit()
			}
			return
		}

		// Fill the rest of the pending byte with the high bits and
		// continue with what is left.
		overflow := count - w.free
		w.pending |= uint8(value >> overflow)
		count = overflow
		value &= uint32(0xFFFFFFFF) >> (32 - count)
		w.emit()
	}
}

// WriteSigned writes value as a two's complement field of count bits.
func (w *Writer) WriteSigned(value int32, count uint) {
	w.WriteBits(uint32(value), count)
}

// WriteFlag writes a single bit.
func (w *Writer) WriteFlag(set bool) {
	if set {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(0, 1)
	}
}

// Flush emits the pending partial byte, zero-padded in its low bits.
// It does nothing when the writer is already byte aligned.
func (w *Writer) Flush() {
	if w.free < 8 {
		w.emit()
	}
}

// Reset discards any pending bits without emitting them.
func (w *Writer) Reset() {
	w.free = 8
	w.pending = 0
}

// Aligned reports whether no partial byte is in flight.
func (w *Writer) Aligned() bool { return w.free == 8 }

// Pending returns the number of bits written into the in-flight byte.
func (w *Writer) Pending() uint { return 8 - w.free }

// Err returns the first error reported by the underlying writer.
func (w *Writer) Err() error { return w.err }

func (w *Writer) emit() {
	if w.err == nil {
		w.err = w.out.WriteByte(w.pending)
	}
	w.Reset()
}
