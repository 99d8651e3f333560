// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"fmt"
	"math"
)

const (
	// actionStop is the DoAction opcode that stops the timeline.
	actionStop = 0x07

	// placeFlagHasCharacter and placeFlagHasName are PlaceObject2 flags.
	placeFlagHasCharacter = 0x02
	placeFlagHasName      = 0x20

	// fillClippedBitmap is the fill style type for a clipped bitmap.
	fillClippedBitmap = 0x41
)

// AssetSource reads external assets (images) by name.
type AssetSource interface {
	ReadAsset(name string) ([]byte, error)
}

// End writes the End tag that terminates a tag sequence.
func (w *Writer) End() {
	w.OpenTag(TagEnd, Known(0))
	w.CloseTag()
}

// SetBackgroundColor writes the stage background colour.
func (w *Writer) SetBackgroundColor(color Color) {
	w.OpenTag(TagSetBackgroundColor, Known(3))
	w.WriteColor(color)
	w.CloseTag()
}

// ShowFrame ends the current frame. Frames shown outside any sprite
// count towards the main timeline's frame count in the header.
func (w *Writer) ShowFrame() error {
	onMainTimeline := len(w.tags) == 0
	if onMainTimeline && w.frameCount == math.MaxUint16 {
		return ErrTooManyFrames
	}
	w.OpenTag(TagShowFrame, Known(0))
	w.CloseTag()
	if onMainTimeline {
		w.frameCount++
	}
	return nil
}

// DefineBitsJPEG2 embeds a complete JPEG stream (tables and image
// data) as a bitmap character.
func (w *Writer) DefineBitsJPEG2(jpeg []byte) (CharacterID, error) {
	w.requireWritable("DefineBitsJPEG2")
	if len(jpeg) == 0 {
		return 0, ErrEmptyImage
	}
	if int64(len(jpeg))+2 > math.MaxUint32 {
		return 0, fmt.Errorf("jpeg of %d bytes: %w", len(jpeg), ErrOutOfRange)
	}
	id, err := w.allocateCharacterID()
	if err != nil {
		return 0, err
	}

	w.OpenTag(TagDefineBitsJPEG2, Known(len(jpeg)+2))
	w.WriteUint16(uint16(id))
	w.WriteBytes(jpeg)
	w.CloseTag()
	return id, nil
}

// DefineBitsJPEG2File reads a JPEG from source and embeds it. When the
// asset cannot be read, no tag is written and the returned ID is zero.
func (w *Writer) DefineBitsJPEG2File(source AssetSource, name string) (CharacterID, error) {
	w.requireWritable("DefineBitsJPEG2File")
	data, err := source.ReadAsset(name)
	if err != nil {
		return 0, fmt.Errorf("embedding %s: %w", name, err)
	}
	id, err := w.DefineBitsJPEG2(data)
	if err != nil {
		return 0, fmt.Errorf("embedding %s: %w", name, err)
	}
	return id, nil
}

// DefineBitmapShape defines a rectangular shape filled with a bitmap
// character, scaled from pixels to twips. bounds is in twips.
func (w *Writer) DefineBitmapShape(bitmap CharacterID, bounds Rect) (CharacterID, error) {
	w.requireWritable("DefineBitmapShape")
	if err := bounds.Validate(); err != nil {
		return 0, err
	}
	width, height := bounds.XMax-bounds.XMin, bounds.YMax-bounds.YMin
	if _, err := edgeWidth(width, 0); err != nil {
		return 0, fmt.Errorf("bitmap shape width: %w", err)
	}
	if _, err := edgeWidth(0, height); err != nil {
		return 0, fmt.Errorf("bitmap shape height: %w", err)
	}
	moveTo := bounds.XMin != 0 || bounds.YMin != 0
	moveWidth := signedWidth(bounds.XMin, bounds.YMin)
	id, err := w.allocateCharacterID()
	if err != nil {
		return 0, err
	}

	w.OpenTag(TagDefineShape, Deferred)
	w.WriteUint16(uint16(id))
	w.WriteRect(bounds)

	// Fill styles: one clipped bitmap fill mapping pixels to twips.
	w.WriteUint8(1)
	w.WriteUint8(fillClippedBitmap)
	w.WriteUint16(uint16(bitmap))
	w.WriteMatrix(ScaleMatrix(TwipsPerPixel))

	// No line styles; one fill index bit, zero line index bits.
	w.WriteUint8(0)
	w.WriteUint8(1 << 4)

	// Style change record selecting fill style 1.
	w.bits.WriteFlag(false) // non-edge record
	w.bits.WriteFlag(false) // new styles
	w.bits.WriteFlag(false) // line style
	w.bits.WriteFlag(true)  // fill style 1
	w.bits.WriteFlag(false) // fill style 0
	w.bits.WriteFlag(moveTo)
	if moveTo {
		w.bits.WriteBits(uint32(moveWidth), widthFieldBits)
		w.bits.WriteSigned(bounds.XMin, moveWidth)
		w.bits.WriteSigned(bounds.YMin, moveWidth)
	}
	w.bits.WriteBits(1, 1) // fill style 1 index

	encodeStraightEdge(w.bits, width, 0)
	encodeStraightEdge(w.bits, 0, height)
	encodeStraightEdge(w.bits, -width, 0)
	encodeStraightEdge(w.bits, 0, -height)

	// End shape record.
	w.bits.WriteBits(0, 6)
	w.bits.Flush()

	w.CloseTag()
	return id, nil
}

// ExportAssets exports a character under name for use by ActionScript
// and other movies.
func (w *Writer) ExportAssets(id CharacterID, name string) error {
	w.requireWritable("ExportAssets")
	if err := ValidateText(name); err != nil {
		return err
	}
	w.OpenTag(TagExportAssets, Known(2+2+textLength(name)))
	w.WriteUint16(1)
	w.WriteUint16(uint16(id))
	w.WriteString(name)
	w.CloseTag()
	return nil
}

// DefineSpriteBegin opens a sprite definition. The tags that follow,
// up to [Writer.DefineSpriteEnd], form the sprite's own timeline.
func (w *Writer) DefineSpriteBegin(frameCount uint16) (CharacterID, error) {
	w.requireWritable("DefineSpriteBegin")
	id, err := w.allocateCharacterID()
	if err != nil {
		return 0, err
	}
	w.OpenTag(TagDefineSprite, Deferred)
	w.WriteUint16(uint16(id))
	w.WriteUint16(frameCount)
	return id, nil
}

// DefineSpriteEnd terminates the sprite's tag sequence and closes the
// sprite. The innermost open tag must be the sprite.
func (w *Writer) DefineSpriteEnd() {
	if n := len(w.tags); n == 0 || w.tags[n-1].code != TagDefineSprite {
		violation("DefineSpriteEnd", "no open sprite")
	}
	w.End()
	w.closeExpecting("DefineSpriteEnd", TagDefineSprite)
}

// PlaceObject2 places a character on the display list at depth.
func (w *Writer) PlaceObject2(id CharacterID, depth uint16) {
	w.OpenTag(TagPlaceObject2, Known(5))
	w.WriteUint8(placeFlagHasCharacter)
	w.WriteUint16(depth)
	w.WriteUint16(uint16(id))
	w.CloseTag()
}

// PlaceObject2Named places a character at depth with an instance name.
func (w *Writer) PlaceObject2Named(id CharacterID, depth uint16, name string) error {
	w.requireWritable("PlaceObject2Named")
	if err := ValidateText(name); err != nil {
		return err
	}
	w.OpenTag(TagPlaceObject2, Known(5+textLength(name)))
	w.WriteUint8(placeFlagHasCharacter | placeFlagHasName)
	w.WriteUint16(depth)
	w.WriteUint16(uint16(id))
	w.WriteString(name)
	w.CloseTag()
	return nil
}

// RemoveObject2 removes whatever is at depth from the display list.
func (w *Writer) RemoveObject2(depth uint16) {
	w.OpenTag(TagRemoveObject2, Known(2))
	w.WriteUint16(depth)
	w.CloseTag()
}

// DoActionStop writes an action block that stops the timeline it is
// in.
func (w *Writer) DoActionStop() {
	w.OpenTag(TagDoAction, Known(2))
	w.WriteUint8(actionStop)
	w.WriteUint8(0) // end of actions
	w.CloseTag()
}
