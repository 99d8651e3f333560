// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/bureau-foundation/swfpack/lib/bitio"
	"github.com/bureau-foundation/swfpack/lib/bytebuf"
	"github.com/bureau-foundation/swfpack/lib/compress"
)

const (
	// DefaultVersion is the SWF version written when Options.Version
	// is zero. Version 6 is the first with zlib compression and UTF-8
	// strings.
	DefaultVersion = 6

	// DefaultFrameRate is used when Options.FrameRate is zero.
	DefaultFrameRate = 30
)

// Options configures a [Writer]. Every writer carries its own copy;
// nothing is shared between writers.
type Options struct {
	// Version is the SWF version byte. Zero means DefaultVersion.
	Version uint8

	// Compress enables zlib compression of everything after the first
	// eight bytes. The compressed form is kept only if it is smaller.
	Compress bool

	// Compressor performs the compression. Nil means zlib at
	// compress.LevelBest.
	Compressor compress.Compressor

	// FrameRate in frames per second, 0 < rate < 256. Zero means
	// DefaultFrameRate. It is stored as 8.8 fixed point.
	FrameRate float64

	// FrameRect is the stage size in twips.
	FrameRect Rect

	// Logger receives debug output from Finish. Nil discards.
	Logger *slog.Logger
}

// CharacterID identifies a defined character (bitmap, shape, sprite)
// for later placement.
type CharacterID uint16

// Writer builds one SWF stream in memory.
type Writer struct {
	options    Options
	compressor compress.Compressor
	logger     *slog.Logger

	buffer *bytebuf.Buffer
	bits   *bitio.Writer
	tags   []tagEntry

	frameRate  float64
	frameRect  Rect
	frameCount uint16

	nextCharacterID CharacterID

	// headerRectLength is the encoded size of the frame rect currently
	// in the header; zero until Header runs.
	headerRectLength int

	// soundFixup marks the placeholder sample count (and, for MP3, the
	// latency seek) in the last SoundStreamHead.
	soundFixup *bytebuf.Mark
	soundIsMP3 bool

	finished bool
}

// New returns a Writer configured by options.
func New(options Options) (*Writer, error) {
	if options.Version == 0 {
		options.Version = DefaultVersion
	}
	if options.FrameRate == 0 {
		options.FrameRate = DefaultFrameRate
	}
	if err := validateFrameRate(options.FrameRate); err != nil {
		return nil, err
	}
	if err := options.FrameRect.Validate(); err != nil {
		return nil, fmt.Errorf("frame rect: %w", err)
	}

	compressor := options.Compressor
	if compressor == nil {
		compressor = compress.Zlib{Level: compress.LevelBest}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	buffer := bytebuf.New()
	writer := &Writer{
		options:    options,
		compressor: compressor,
		logger:     logger,
		buffer:     buffer,
		bits:       bitio.NewWriter(buffer),
	}
	writer.Reset()
	return writer, nil
}

func validateFrameRate(rate float64) error {
	if !(rate > 0 && rate < 256) {
		return fmt.Errorf("%v: %w", rate, ErrFrameRate)
	}
	return nil
}

// Reset discards everything written and returns the writer to its
// freshly constructed state.
func (w *Writer) Reset() {
	w.buffer.Reset()
	w.bits.Reset()
	w.tags = nil
	w.frameRate = w.options.FrameRate
	w.frameRect = w.options.FrameRect
	w.frameCount = 0
	w.nextCharacterID = 0
	w.headerRectLength = 0
	w.soundFixup = nil
	w.soundIsMP3 = false
	w.finished = false
}

// SetFrameRate changes the frame rate recorded in the header. It may
// be called at any time before Finish.
func (w *Writer) SetFrameRate(rate float64) error {
	w.requireWritable("SetFrameRate")
	if err := validateFrameRate(rate); err != nil {
		return err
	}
	w.frameRate = rate
	return nil
}

// SetFrameRect changes the stage rectangle. It may be called after the
// header has been written; Finish re-encodes the header to match.
func (w *Writer) SetFrameRect(rect Rect) error {
	w.requireWritable("SetFrameRect")
	if err := rect.Validate(); err != nil {
		return fmt.Errorf("frame rect: %w", err)
	}
	w.frameRect = rect
	return nil
}

// FrameRect returns the current stage rectangle.
func (w *Writer) FrameRect() Rect { return w.frameRect }

// FrameCount returns the number of main timeline frames shown so far.
func (w *Writer) FrameCount() uint16 { return w.frameCount }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buffer.Len() }

// Bits returns the bit packer for callers writing their own bit
// fields. Bits must be flushed before any byte-level write.
func (w *Writer) Bits() *bitio.Writer { return w.bits }

// FlushBits aligns the stream to a byte boundary.
func (w *Writer) FlushBits() {
	w.requireWritable("FlushBits")
	w.bits.Flush()
}

// WriteUint8 writes one byte.
func (w *Writer) WriteUint8(value uint8) {
	w.requireByteWrite("WriteUint8")
	w.buffer.WriteByte(value)
}

// WriteUint16 writes a little-endian 16-bit value.
func (w *Writer) WriteUint16(value uint16) {
	w.requireByteWrite("WriteUint16")
	w.buffer.WriteUint16(value)
}

// WriteUint32 writes a little-endian 32-bit value.
func (w *Writer) WriteUint32(value uint32) {
	w.requireByteWrite("WriteUint32")
	w.buffer.WriteUint32(value)
}

// WriteBytes writes data verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.requireByteWrite("WriteBytes")
	w.buffer.Write(data)
}

// WriteString writes s as UTF-8 followed by a NUL terminator. Text that
// fails [ValidateText] is rejected and nothing is written.
func (w *Writer) WriteString(s string) error {
	w.requireByteWrite("WriteString")
	if err := ValidateText(s); err != nil {
		return err
	}
	w.buffer.Write([]byte(s))
	w.buffer.WriteByte(0)
	return nil
}

// WriteColor writes an RGB triple.
func (w *Writer) WriteColor(color Color) {
	w.requireByteWrite("WriteColor")
	w.buffer.Write([]byte{color.Red, color.Green, color.Blue})
}

// WriteRect writes a byte-aligned rectangle. The rectangle must pass
// [Rect.Validate].
func (w *Writer) WriteRect(rect Rect) {
	w.requireByteWrite("WriteRect")
	if err := rect.Validate(); err != nil {
		violation("WriteRect", "%v", err)
	}
	encodeRect(w.bits, rect)
}

// WriteMatrix writes a byte-aligned matrix. The matrix must pass
// [Matrix.Validate].
func (w *Writer) WriteMatrix(matrix Matrix) {
	w.requireByteWrite("WriteMatrix")
	if err := matrix.Validate(); err != nil {
		violation("WriteMatrix", "%v", err)
	}
	encodeMatrix(w.bits, matrix)
}

// WriteStraightEdge writes a straight edge shape record into the
// current bit stream. Shape records are not byte aligned, so this does
// not require alignment. It returns an error, writing nothing, when the
// deltas are too large for the record.
func (w *Writer) WriteStraightEdge(dx, dy int32) error {
	w.requireWritable("WriteStraightEdge")
	if _, err := edgeWidth(dx, dy); err != nil {
		return err
	}
	encodeStraightEdge(w.bits, dx, dy)
	return nil
}

// allocateCharacterID returns the next character ID.
func (w *Writer) allocateCharacterID() (CharacterID, error) {
	if w.nextCharacterID == math.MaxUint16 {
		return 0, ErrTooManyCharacters
	}
	w.nextCharacterID++
	return w.nextCharacterID, nil
}

func (w *Writer) requireWritable(operation string) {
	if w.finished {
		violation(operation, "writer already finished")
	}
}

func (w *Writer) requireAligned(operation string) {
	if !w.bits.Aligned() {
		violation(operation, "%d bits pending in an unflushed byte", w.bits.Pending())
	}
}

func (w *Writer) requireByteWrite(operation string) {
	w.requireWritable(operation)
	w.requireAligned(operation)
}
