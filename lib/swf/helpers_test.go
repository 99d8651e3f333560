// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/bureau-foundation/swfpack/lib/bitio"
)

func newTestWriter(t *testing.T, options Options) *Writer {
	t.Helper()
	writer, err := New(options)
	if err != nil {
		t.Fatalf("New(%+v) failed: %v", options, err)
	}
	return writer
}

// expectViolation runs fn and checks that it panics with a
// *ContractError naming operation.
func expectViolation(t *testing.T, operation string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		recovered := recover()
		if recovered == nil {
			t.Fatalf("%s: expected a contract violation panic", operation)
		}
		violation, ok := recovered.(*ContractError)
		if !ok {
			t.Fatalf("%s: panicked with %T (%v), want *ContractError", operation, recovered, recovered)
		}
		if violation.Operation != operation {
			t.Errorf("ContractError.Operation = %q, want %q (detail: %s)", violation.Operation, operation, violation.Detail)
		}
	}()
	fn()
}

// parsedTag is one tag read back from written bytes.
type parsedTag struct {
	code         TagCode
	headerLength int
	payload      []byte
}

// parseTag reads the tag at the start of data and returns it with the
// bytes that follow it.
func parseTag(t *testing.T, data []byte) (parsedTag, []byte) {
	t.Helper()
	if len(data) < compactHeaderLength {
		t.Fatalf("parseTag: %d bytes is too short for a tag header", len(data))
	}
	word := binary.LittleEndian.Uint16(data)
	tag := parsedTag{code: TagCode(word >> 6), headerLength: compactHeaderLength}
	length := int(word & extendedLengthMarker)
	if length == extendedLengthMarker {
		if len(data) < extendedHeaderLength {
			t.Fatalf("parseTag: %d bytes is too short for an extended header", len(data))
		}
		length = int(binary.LittleEndian.Uint32(data[2:]))
		tag.headerLength = extendedHeaderLength
	}
	end := tag.headerLength + length
	if end > len(data) {
		t.Fatalf("parseTag: %s declares %d payload bytes, only %d remain", tag.code, length, len(data)-tag.headerLength)
	}
	tag.payload = data[tag.headerLength:end]
	return tag, data[end:]
}

// decodeRect reads a rect record from r and aligns.
func decodeRect(t *testing.T, r *bitio.Reader) Rect {
	t.Helper()
	width, err := r.ReadBits(widthFieldBits)
	if err != nil {
		t.Fatalf("reading rect width: %v", err)
	}
	var rect Rect
	for _, field := range []*int32{&rect.XMin, &rect.XMax, &rect.YMin, &rect.YMax} {
		value, err := r.ReadSigned(uint(width))
		if err != nil {
			t.Fatalf("reading rect field: %v", err)
		}
		*field = value
	}
	r.Align()
	return rect
}

func readBits(t *testing.T, r *bitio.Reader, count uint) uint32 {
	t.Helper()
	value, err := r.ReadBits(count)
	if err != nil {
		t.Fatalf("reading %d bits: %v", count, err)
	}
	return value
}

func readSigned(t *testing.T, r *bitio.Reader, count uint) int32 {
	t.Helper()
	value, err := r.ReadSigned(count)
	if err != nil {
		t.Fatalf("reading %d signed bits: %v", count, err)
	}
	return value
}

func readFlag(t *testing.T, r *bitio.Reader) bool {
	t.Helper()
	set, err := r.ReadFlag()
	if err != nil {
		t.Fatalf("reading flag: %v", err)
	}
	return set
}

func readUint16(t *testing.T, r *bitio.Reader) uint16 {
	t.Helper()
	low := readBits(t, r, 8)
	high := readBits(t, r, 8)
	return uint16(high<<8 | low)
}

// memoryDestination keeps finished streams by name.
type memoryDestination struct {
	files map[string][]byte
	err   error
}

func (d *memoryDestination) Put(_ context.Context, name string, data []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.files == nil {
		d.files = make(map[string][]byte)
	}
	d.files[name] = append([]byte(nil), data...)
	return nil
}

// assetFunc adapts a function to AssetSource.
type assetFunc func(name string) ([]byte, error)

func (f assetFunc) ReadAsset(name string) ([]byte, error) { return f(name) }
