// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bytebuf

import "fmt"

// Mark is a position in a [Buffer] that follows content moved by
// [Buffer.Shift]. Marks are created with [Buffer.Mark] and stay live
// until released, invalidated by a shift or resize that destroys the
// byte they point at, or the buffer is reset.
type Mark struct {
	offset int
	valid  bool
}

// Offset returns the current position of the mark. Reading an invalid
// mark panics: the byte it pointed at no longer exists.
func (m *Mark) Offset() int {
	if !m.valid {
		panic("bytebuf: offset of invalidated mark")
	}
	return m.offset
}

// Valid reports whether the mark still points at live content.
func (m *Mark) Valid() bool { return m.valid }

// Mark registers a new mark at offset. Offsets beyond Len are allowed
// and are adjusted like any other.
func (b *Buffer) Mark(offset int) *Mark {
	if offset < 0 {
		panic(fmt.Sprintf("bytebuf: mark at negative offset %d", offset))
	}
	mark := &Mark{offset: offset, valid: true}
	b.marks = append(b.marks, mark)
	return mark
}

// Release unregisters m. Releasing a mark that is not registered with
// b is a no-op. The mark is invalid afterwards.
func (b *Buffer) Release(m *Mark) {
	for i, candidate := range b.marks {
		if candidate == m {
			b.marks = append(b.marks[:i], b.marks[i+1:]...)
			break
		}
	}
	m.valid = false
}

// adjustMarks applies a completed Shift of [start, start+length) by
// delta to the registered marks. A mark at exactly start+length trails
// the moved range and moves with it.
func (b *Buffer) adjustMarks(start, length, delta int) {
	destination := start + delta
	kept := b.marks[:0]
	for _, mark := range b.marks {
		switch {
		case mark.offset >= start && mark.offset <= start+length:
			mark.offset += delta
		case mark.offset >= destination:
			mark.valid = false
			continue
		}
		kept = append(kept, mark)
	}
	clear(b.marks[len(kept):])
	b.marks = kept
}

// invalidateBeyond drops marks that point past size.
func (b *Buffer) invalidateBeyond(size int) {
	kept := b.marks[:0]
	for _, mark := range b.marks {
		if mark.offset > size {
			mark.valid = false
			continue
		}
		kept = append(kept, mark)
	}
	clear(b.marks[len(kept):])
	b.marks = kept
}
