// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bureau-foundation/swfpack/lib/bytebuf"
)

const (
	// compactHeaderLength is the size of a header with the length in
	// the low six bits of the code word.
	compactHeaderLength = 2

	// extendedHeaderLength is the size of a header with the 0x3F
	// marker and a 32-bit length.
	extendedHeaderLength = 6

	// extendedLengthMarker in the low six bits of the code word means
	// a 32-bit length follows.
	extendedLengthMarker = 0x3F
)

// Open selects how [Writer.OpenTag] sizes the tag header. Construct it
// with [Known] or use [Deferred].
type Open struct {
	deferred bool
	size     uint32
}

// Known opens a tag whose payload length is size bytes. The header is
// written in its final form immediately; [Writer.CloseTag] checks that
// exactly size bytes were written.
func Known(size int) Open {
	if size < 0 || int64(size) > math.MaxUint32 {
		violation("Known", "payload size %d out of range", size)
	}
	return Open{size: uint32(size)}
}

// Deferred opens a tag whose payload length is determined when the tag
// is closed.
var Deferred = Open{deferred: true}

func (o Open) String() string {
	if o.deferred {
		return "deferred"
	}
	return fmt.Sprintf("known(%d)", o.size)
}

// tagEntry is an open tag. The header position is a buffer mark so it
// survives shifts made by nested closes.
type tagEntry struct {
	code         TagCode
	open         Open
	header       *bytebuf.Mark
	headerLength int
}

// compactEligible reports whether a payload of size bytes for code can
// use the two-byte header.
func compactEligible(code TagCode, size int) bool {
	return size < extendedLengthMarker && !code.AlwaysExtended()
}

// HeaderLength returns the number of header bytes a closed tag with a
// payload of size bytes occupies.
func HeaderLength(code TagCode, size int) int {
	if compactEligible(code, size) {
		return compactHeaderLength
	}
	return extendedHeaderLength
}

func compactHeader(code TagCode, size int) []byte {
	var header [compactHeaderLength]byte
	binary.LittleEndian.PutUint16(header[:], uint16(code)<<6|uint16(size))
	return header[:]
}

func extendedHeader(code TagCode, size uint32) []byte {
	var header [extendedHeaderLength]byte
	binary.LittleEndian.PutUint16(header[:2], uint16(code)<<6|extendedLengthMarker)
	binary.LittleEndian.PutUint32(header[2:], size)
	return header[:]
}

// OpenTag writes the header of a tag and pushes it on the open tag
// stack. Every OpenTag must be paired with a [Writer.CloseTag].
func (w *Writer) OpenTag(code TagCode, open Open) {
	w.requireWritable("OpenTag")
	w.requireAligned("OpenTag")
	if code > maxTagCode {
		violation("OpenTag", "tag code %d does not fit in ten bits", code)
	}

	entry := tagEntry{
		code:   code,
		open:   open,
		header: w.buffer.Mark(w.buffer.Cursor()),
	}

	switch {
	case open.deferred:
		// Placeholder length, patched by CloseTag.
		w.buffer.Write(extendedHeader(code, 0))
		entry.headerLength = extendedHeaderLength
	case compactEligible(code, int(open.size)):
		w.buffer.Write(compactHeader(code, int(open.size)))
		entry.headerLength = compactHeaderLength
	default:
		w.buffer.Write(extendedHeader(code, open.size))
		entry.headerLength = extendedHeaderLength
	}

	w.tags = append(w.tags, entry)
}

// CloseTag completes the innermost open tag. For a deferred tag it
// backpatches the length; if the payload fits the compact header, the
// header is rewritten as two bytes and the payload moved left to close
// the gap. For a known-size tag it verifies the payload length.
//
// Closing with no open tag panics.
func (w *Writer) CloseTag() {
	w.requireWritable("CloseTag")
	w.requireAligned("CloseTag")
	if len(w.tags) == 0 {
		violation("CloseTag", "no open tag")
	}

	entry := w.tags[len(w.tags)-1]
	w.tags = w.tags[:len(w.tags)-1]

	start := entry.header.Offset()
	w.buffer.Release(entry.header)

	payloadStart := start + entry.headerLength
	size := w.buffer.Cursor() - payloadStart

	if !entry.open.deferred {
		if size != int(entry.open.size) {
			violation("CloseTag", "%s declared %d payload bytes but %d were written",
				entry.code, entry.open.size, size)
		}
		return
	}

	if compactEligible(entry.code, size) {
		w.buffer.WriteAt(compactHeader(entry.code, size), int64(start))
		w.buffer.Shift(payloadStart, size, compactHeaderLength-extendedHeaderLength)
		w.buffer.Seek(start + compactHeaderLength + size)
		return
	}

	if int64(size) > math.MaxUint32 {
		violation("CloseTag", "%s payload of %d bytes exceeds 32-bit length", entry.code, size)
	}
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(size))
	w.buffer.WriteAt(length[:], int64(start+compactHeaderLength))
}

// closeExpecting closes the innermost tag after checking it is code.
func (w *Writer) closeExpecting(operation string, code TagCode) {
	if len(w.tags) == 0 {
		violation(operation, "no open %s tag", code)
	}
	if top := w.tags[len(w.tags)-1].code; top != code {
		violation(operation, "innermost open tag is %s, not %s", top, code)
	}
	w.CloseTag()
}

// OpenTags returns the number of tags currently open.
func (w *Writer) OpenTags() int { return len(w.tags) }
