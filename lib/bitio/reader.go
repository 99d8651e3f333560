// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitio

import (
	"errors"
	"fmt"
)

// ErrShortData is returned when a read runs past the end of the data.
var ErrShortData = errors.New("bitio: read past end of data")

// Reader reads MSB-first bit fields from a byte slice.
type Reader struct {
	data     []byte
	position uint // in bits
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBits reads an unsigned field of count bits.
func (r *Reader) ReadBits(count uint) (uint32, error) {
	if count > MaxFieldBits {
		return 0, fmt.Errorf("bitio: field of %d bits exceeds %d", count, MaxFieldBits)
	}
	if r.position+count > uint(len(r.data))*8 {
		return 0, ErrShortData
	}

	var value uint32
	for i := uint(0); i < count; i++ {
		octet := r.data[r.position/8]
		bit := (octet >> (7 - r.position%8)) & 1
		value = value<<1 | uint32(bit)
		r.position++
	}
	return value, nil
}

// ReadSigned reads a two's complement field of count bits and sign
// extends it.
func (r *Reader) ReadSigned(count uint) (int32, error) {
	value, err := r.ReadBits(count)
	if err != nil || count == 0 {
		return 0, err
	}
	shift := 32 - count
	return int32(value<<shift) >> shift, nil
}

// ReadFlag reads a single bit.
func (r *Reader) ReadFlag() (bool, error) {
	value, err := r.ReadBits(1)
	return value == 1, err
}

// Align skips to the start of the next byte unless already aligned.
func (r *Reader) Align() {
	if rem := r.position % 8; rem != 0 {
		r.position += 8 - rem
	}
}

// Offset returns the byte offset of the next whole byte, rounding a
// partial position up.
func (r *Reader) Offset() int {
	return int((r.position + 7) / 8)
}
