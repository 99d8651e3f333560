// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/bits"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/swfpack/lib/bitio"
)

// TwipsPerPixel is the number of twips (the SWF coordinate unit) in
// one pixel.
const TwipsPerPixel = 20

const (
	// widthFieldBits is the size of the field that prefixes rectangles
	// and matrix components with their value width.
	widthFieldBits = 5

	// maxFieldWidth is the largest width a five-bit prefix can carry.
	maxFieldWidth = 1<<widthFieldBits - 1

	// maxEdgeWidth is the largest edge delta width: the record stores
	// width-2 in four bits.
	maxEdgeWidth = 15 + 2

	// minEdgeWidth is the smallest width the width-2 encoding allows.
	minEdgeWidth = 2
)

// RequiredBits returns the number of bits needed to hold value as an
// unsigned integer: the position of its highest set bit plus one, or
// zero for zero. Signed fields need one more bit.
func RequiredBits(value uint32) uint {
	return uint(bits.Len32(value))
}

// signedWidth returns the field width for signed values of the given
// magnitudes: the widest magnitude plus a sign bit.
func signedWidth(magnitudes ...int32) uint {
	var widest uint32
	for _, value := range magnitudes {
		widest = max(widest, magnitude(value))
	}
	return RequiredBits(widest) + 1
}

func magnitude(value int32) uint32 {
	if value < 0 {
		return uint32(-int64(value))
	}
	return uint32(value)
}

// Color is an RGB colour.
type Color struct {
	Red, Green, Blue uint8
}

// ParseColor parses "#RRGGBB" (the leading # is optional).
func ParseColor(text string) (Color, error) {
	digits := strings.TrimPrefix(text, "#")
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("parsing color %q: want 6 hex digits", text)
	}
	channels, err := hex.DecodeString(digits)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", text, err)
	}
	return Color{Red: channels[0], Green: channels[1], Blue: channels[2]}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// Rect is an axis-aligned rectangle in twips.
type Rect struct {
	XMin, XMax, YMin, YMax int32
}

// PixelRect returns the rectangle covering width by height pixels from
// the origin.
func PixelRect(width, height int32) Rect {
	return Rect{XMax: width * TwipsPerPixel, YMax: height * TwipsPerPixel}
}

// GreatestAbsValue returns the largest magnitude among the four bounds.
func (r Rect) GreatestAbsValue() uint32 {
	return max(magnitude(r.XMin), magnitude(r.XMax), magnitude(r.YMin), magnitude(r.YMax))
}

// Validate reports whether the rectangle's bounds fit the five-bit
// width prefix of the encoding.
func (r Rect) Validate() error {
	if width := RequiredBits(r.GreatestAbsValue()) + 1; width > maxFieldWidth {
		return fmt.Errorf("rect %v needs %d-bit fields: %w", r, width, ErrOutOfRange)
	}
	return nil
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d]x[%d,%d]", r.XMin, r.XMax, r.YMin, r.YMax)
}

// encodeRect writes r as a width prefix and four signed fields, then
// aligns to a byte boundary.
func encodeRect(out *bitio.Writer, r Rect) {
	width := RequiredBits(r.GreatestAbsValue()) + 1
	out.WriteBits(uint32(width), widthFieldBits)
	out.WriteSigned(r.XMin, width)
	out.WriteSigned(r.XMax, width)
	out.WriteSigned(r.YMin, width)
	out.WriteSigned(r.YMax, width)
	out.Flush()
}

// Matrix is a 2x3 transform. Scale and rotate/skew components are
// written as 16.16 fixed point; translation is in twips.
type Matrix struct {
	HasScale       bool
	ScaleX, ScaleY float64

	HasRotate                bool
	RotateSkew0, RotateSkew1 float64

	TranslateX, TranslateY int32
}

// ScaleMatrix returns a uniform scale-only matrix.
func ScaleMatrix(scale float64) Matrix {
	return Matrix{HasScale: true, ScaleX: scale, ScaleY: scale}
}

// FixedPoint converts value to 16.16 fixed point, rounding to the
// nearest representable value.
func FixedPoint(value float64) int32 {
	return int32(math.Round(value * 65536))
}

// Validate reports whether every component fits its encoding.
func (m Matrix) Validate() error {
	check := func(name string, values ...float64) error {
		for _, value := range values {
			fixed := value * 65536
			if math.IsNaN(fixed) || fixed >= math.MaxInt32 || fixed <= math.MinInt32 {
				return fmt.Errorf("matrix %s %v: %w", name, value, ErrOutOfRange)
			}
		}
		return nil
	}
	if m.HasScale {
		if err := check("scale", m.ScaleX, m.ScaleY); err != nil {
			return err
		}
		if signedWidth(FixedPoint(m.ScaleX), FixedPoint(m.ScaleY)) > maxFieldWidth {
			return fmt.Errorf("matrix scale (%v, %v): %w", m.ScaleX, m.ScaleY, ErrOutOfRange)
		}
	}
	if m.HasRotate {
		if err := check("rotate/skew", m.RotateSkew0, m.RotateSkew1); err != nil {
			return err
		}
		if signedWidth(FixedPoint(m.RotateSkew0), FixedPoint(m.RotateSkew1)) > maxFieldWidth {
			return fmt.Errorf("matrix rotate/skew (%v, %v): %w", m.RotateSkew0, m.RotateSkew1, ErrOutOfRange)
		}
	}
	if signedWidth(m.TranslateX, m.TranslateY) > maxFieldWidth {
		return fmt.Errorf("matrix translate (%d, %d): %w", m.TranslateX, m.TranslateY, ErrOutOfRange)
	}
	return nil
}

// encodeMatrix writes the self-describing matrix record and aligns.
func encodeMatrix(out *bitio.Writer, m Matrix) {
	out.WriteFlag(m.HasScale)
	if m.HasScale {
		scaleX, scaleY := FixedPoint(m.ScaleX), FixedPoint(m.ScaleY)
		width := signedWidth(scaleX, scaleY)
		out.WriteBits(uint32(width), widthFieldBits)
		out.WriteSigned(scaleX, width)
		out.WriteSigned(scaleY, width)
	}

	out.WriteFlag(m.HasRotate)
	if m.HasRotate {
		skew0, skew1 := FixedPoint(m.RotateSkew0), FixedPoint(m.RotateSkew1)
		width := signedWidth(skew0, skew1)
		out.WriteBits(uint32(width), widthFieldBits)
		out.WriteSigned(skew0, width)
		out.WriteSigned(skew1, width)
	}

	// No translation is written as a zero width with no fields.
	var width uint
	if m.TranslateX != 0 || m.TranslateY != 0 {
		width = signedWidth(m.TranslateX, m.TranslateY)
	}
	out.WriteBits(uint32(width), widthFieldBits)
	out.WriteSigned(m.TranslateX, width)
	out.WriteSigned(m.TranslateY, width)
	out.Flush()
}

// edgeWidth returns the delta width for a straight edge record.
func edgeWidth(dx, dy int32) (uint, error) {
	width := max(signedWidth(dx, dy), minEdgeWidth)
	if width > maxEdgeWidth {
		return 0, fmt.Errorf("edge (%d, %d) needs %d-bit deltas: %w", dx, dy, width, ErrOutOfRange)
	}
	return width, nil
}

// encodeStraightEdge writes a straight edge record. Axis-aligned edges
// use the short vertical/horizontal form. The caller validates the
// deltas with edgeWidth first; the record is not byte aligned.
func encodeStraightEdge(out *bitio.Writer, dx, dy int32) {
	width, err := edgeWidth(dx, dy)
	if err != nil {
		violation("encodeStraightEdge", "%v", err)
	}

	out.WriteFlag(true) // edge record
	out.WriteFlag(true) // straight edge
	out.WriteBits(uint32(width-minEdgeWidth), 4)

	switch {
	case dx != 0 && dy != 0:
		out.WriteFlag(true) // general line
		out.WriteSigned(dx, width)
		out.WriteSigned(dy, width)
	case dx == 0 && dy != 0:
		out.WriteFlag(false)
		out.WriteFlag(true) // vertical
		out.WriteSigned(dy, width)
	default:
		out.WriteFlag(false)
		out.WriteFlag(false) // horizontal
		out.WriteSigned(dx, width)
	}
}

// ValidateText reports whether s can be written as an SWF string:
// valid UTF-8 and free of NUL bytes.
func ValidateText(s string) error {
	if !utf8.ValidString(s) || strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%q: %w", s, ErrInvalidText)
	}
	return nil
}

// textLength returns the encoded size of s including its terminator.
func textLength(s string) int {
	return len(s) + 1
}
