// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bureau-foundation/swfpack/lib/bitio"
	"github.com/bureau-foundation/swfpack/lib/bytebuf"
)

const (
	// signatureLength covers the signature, version and total length
	// fields: the prefix that is never compressed.
	signatureLength = 8

	// rectOffset is where the frame rect starts in the header.
	rectOffset = signatureLength

	plainSignature      = 'F'
	compressedSignature = 'C'
)

// Destination receives a finished stream. lib/sink provides
// implementations.
type Destination interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Header writes the file header. It must be the first thing written.
// The total length, frame rate and frame count are placeholders here;
// [Writer.Finish] fills them in from the writer's state at the time it
// runs.
func (w *Writer) Header() {
	w.requireByteWrite("Header")
	if w.headerRectLength != 0 || w.buffer.Len() != 0 {
		violation("Header", "header must be written first and only once")
	}
	w.buffer.Write([]byte{plainSignature, 'W', 'S', w.options.Version})
	w.buffer.WriteUint32(0)
	rect := encodedRect(w.frameRect)
	w.buffer.Write(rect)
	w.headerRectLength = len(rect)
	w.buffer.WriteUint16(0)
	w.buffer.WriteUint16(0)
}

// encodedRect returns the byte-aligned encoding of rect.
func encodedRect(rect Rect) []byte {
	scratch := bytebuf.New()
	encodeRect(bitio.NewWriter(scratch), rect)
	return scratch.Bytes()
}

// encodedFrameRate returns rate as 8.8 fixed point.
func encodedFrameRate(rate float64) uint16 {
	return uint16(min(math.Round(rate*256), math.MaxUint16))
}

// fixupHeader rewrites the header fields from the current state. A
// frame rect whose encoding changed size since Header moves the body.
func (w *Writer) fixupHeader() error {
	rect := encodedRect(w.frameRect)
	if delta := len(rect) - w.headerRectLength; delta != 0 {
		body := rectOffset + w.headerRectLength
		w.buffer.Shift(body, w.buffer.Len()-body, delta)
		w.headerRectLength = len(rect)
	}
	if int64(w.buffer.Len()) > math.MaxUint32 {
		return fmt.Errorf("stream of %d bytes: %w", w.buffer.Len(), ErrOutOfRange)
	}

	fields := make([]byte, 0, len(rect)+4)
	fields = append(fields, rect...)
	fields = binary.LittleEndian.AppendUint16(fields, encodedFrameRate(w.frameRate))
	fields = binary.LittleEndian.AppendUint16(fields, w.frameCount)
	w.buffer.WriteAt(fields, rectOffset)

	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(w.buffer.Len()))
	w.buffer.WriteAt(length[:], 4)
	w.buffer.Seek(w.buffer.Len())
	return nil
}

// Finish completes the stream: it fills in the header and, when
// compression is enabled, compresses everything after the first eight
// bytes, keeping the compressed form only if it is strictly smaller.
// The returned slice aliases the writer's buffer and stays valid until
// [Writer.Reset].
//
// Finishing with open tags, unflushed bits, or no header panics. If
// compression fails, Finish returns the error and the writer is not
// finished.
func (w *Writer) Finish() ([]byte, error) {
	w.requireWritable("Finish")
	w.requireAligned("Finish")
	if len(w.tags) != 0 {
		violation("Finish", "%d tags still open, innermost %s", len(w.tags), w.tags[len(w.tags)-1].code)
	}
	if w.headerRectLength == 0 {
		violation("Finish", "no header written")
	}

	if err := w.fixupHeader(); err != nil {
		return nil, err
	}
	uncompressed := w.buffer.Len()

	compressed := false
	if w.options.Compress {
		payload := w.buffer.Bytes()[signatureLength:]
		result, err := w.compressor.Compress(payload)
		if err != nil {
			return nil, fmt.Errorf("compressing stream: %w", err)
		}
		if len(result) < len(payload) {
			w.buffer.Resize(signatureLength + len(result))
			w.buffer.WriteAt(result, signatureLength)
			w.buffer.WriteAt([]byte{compressedSignature}, 0)
			w.buffer.Seek(w.buffer.Len())
			compressed = true
		}
	}

	w.finished = true
	w.logger.Debug("swf stream finished",
		"version", w.options.Version,
		"frames", w.frameCount,
		"characters", uint16(w.nextCharacterID),
		"uncompressed_bytes", uncompressed,
		"bytes", w.buffer.Len(),
		"compressed", compressed,
	)
	return w.buffer.Bytes(), nil
}

// Finished reports whether Finish has completed.
func (w *Writer) Finished() bool { return w.finished }

// Close finishes the stream, stores it at name in destination as a
// single block, and resets the writer for reuse. If the destination
// fails, the writer stays finished with its bytes intact so the caller
// may retry elsewhere.
func (w *Writer) Close(ctx context.Context, destination Destination, name string) error {
	data := w.buffer.Bytes()
	if !w.finished {
		var err error
		if data, err = w.Finish(); err != nil {
			return err
		}
	}
	if err := destination.Put(ctx, name, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	w.Reset()
	return nil
}
