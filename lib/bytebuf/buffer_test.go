// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bytebuf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriteAtReadBack(t *testing.T) {
	tests := []struct {
		name   string
		prefix int
		offset int
		data   []byte
	}{
		{"append to empty", 0, 0, []byte{1, 2, 3}},
		{"overwrite middle", 10, 4, []byte{0xAA, 0xBB}},
		{"past end", 3, 9, []byte{0xFF}},
		{"straddles end", 6, 4, []byte{7, 8, 9, 10, 11}},
		{"empty write past end", 2, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffer := New()
			buffer.Write(bytes.Repeat([]byte{0x11}, tt.prefix))

			if _, err := buffer.WriteAt(tt.data, int64(tt.offset)); err != nil {
				t.Fatalf("WriteAt: %v", err)
			}

			got := buffer.ReadSlice(tt.offset, len(tt.data))
			if diff := cmp.Diff(tt.data, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("read back mismatch (-want +got):\n%s", diff)
			}
			if buffer.Cursor() != tt.prefix {
				t.Errorf("WriteAt moved cursor to %d, want %d", buffer.Cursor(), tt.prefix)
			}
		})
	}
}

func TestGapBytesReadZero(t *testing.T) {
	buffer := New()
	buffer.WriteByte(0x01)
	buffer.Seek(6)
	buffer.WriteByte(0x02)

	want := []byte{0x01, 0, 0, 0, 0, 0, 0x02}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestGapBytesZeroAfterTruncateAndRegrow(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{9, 9, 9, 9, 9, 9})
	buffer.Resize(2)
	buffer.Seek(5)
	buffer.WriteByte(1)

	want := []byte{9, 9, 0, 0, 0, 1}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("stale bytes resurfaced (-want +got):\n%s", diff)
	}
}

func TestWriteAtNegativeOffset(t *testing.T) {
	buffer := New()
	if _, err := buffer.WriteAt([]byte{1}, -1); !errors.Is(err, ErrNegativeOffset) {
		t.Errorf("WriteAt(-1) error = %v, want ErrNegativeOffset", err)
	}
}

func TestLittleEndianWriters(t *testing.T) {
	buffer := New()
	buffer.WriteUint16(0x1234)
	buffer.WriteUint32(0xDEADBEEF)

	want := []byte{0x34, 0x12, 0xEF, 0xBE, 0xAD, 0xDE}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	if buffer.Cursor() != 6 {
		t.Errorf("cursor = %d, want 6", buffer.Cursor())
	}
}

func TestResize(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{1, 2, 3})

	buffer.Resize(5)
	if diff := cmp.Diff([]byte{1, 2, 3, 0, 0}, buffer.Bytes()); diff != "" {
		t.Errorf("grow mismatch (-want +got):\n%s", diff)
	}

	buffer.Resize(1)
	if diff := cmp.Diff([]byte{1}, buffer.Bytes()); diff != "" {
		t.Errorf("shrink mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftLeft(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{0xA, 0xB, 0, 0, 0, 0, 1, 2, 3})

	buffer.Shift(6, 3, -4)

	want := []byte{0xA, 0xB, 1, 2, 3}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftLeftOverlapping(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{0, 1, 2, 3, 4, 5, 6, 7})

	buffer.Shift(2, 6, -1)

	want := []byte{0, 2, 3, 4, 5, 6, 7}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftRightOverlapping(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{0, 1, 2, 3, 4, 5})

	buffer.Shift(1, 5, 2)

	want := []byte{0, 0, 0, 1, 2, 3, 4, 5}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftTruncatesTrailingContent(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{0, 1, 2, 3, 4, 5})

	// Moving the middle range leaves the buffer ending at the range's
	// new end; bytes after it are dropped.
	buffer.Shift(2, 2, -1)

	want := []byte{0, 2, 3}
	if diff := cmp.Diff(want, buffer.Bytes()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftPanics(t *testing.T) {
	tests := []struct {
		name                 string
		start, length, delta int
	}{
		{"source past end", 2, 5, -1},
		{"destination before start", 1, 2, -2},
		{"negative start", -1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffer := New()
			buffer.Write([]byte{0, 1, 2, 3})

			defer func() {
				if recover() == nil {
					t.Errorf("Shift(%d, %d, %d) did not panic", tt.start, tt.length, tt.delta)
				}
			}()
			buffer.Shift(tt.start, tt.length, tt.delta)
		})
	}
}

func TestReadSliceOutOfRangePanics(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{1, 2})

	defer func() {
		if recover() == nil {
			t.Error("ReadSlice past end did not panic")
		}
	}()
	buffer.ReadSlice(1, 2)
}

func TestReadSliceIsCopy(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{1, 2, 3})

	slice := buffer.ReadSlice(0, 3)
	slice[0] = 99

	if buffer.Bytes()[0] != 1 {
		t.Error("mutating ReadSlice result changed the buffer")
	}
}

func TestReset(t *testing.T) {
	buffer := New()
	buffer.Write([]byte{1, 2, 3})
	mark := buffer.Mark(1)

	buffer.Reset()

	if buffer.Len() != 0 || buffer.Cursor() != 0 {
		t.Errorf("after Reset: Len=%d Cursor=%d, want 0/0", buffer.Len(), buffer.Cursor())
	}
	if mark.Valid() {
		t.Error("mark survived Reset")
	}
}
