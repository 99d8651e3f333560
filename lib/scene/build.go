// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"fmt"

	"github.com/bureau-foundation/swfpack/lib/asset"
	"github.com/bureau-foundation/swfpack/lib/swf"
)

// Symbols maps scene symbol names to the character IDs they were
// defined with.
type Symbols map[string]swf.CharacterID

// Build validates the scene and writes it to w, from the header through
// the final End tag. It does not call Finish. w must be freshly
// constructed or reset; on error it is left mid-stream and should be
// reset before reuse.
func Build(s *Scene, w *swf.Writer, source swf.AssetSource) (Symbols, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if err := w.SetFrameRect(s.FrameRect()); err != nil {
		return nil, err
	}
	if s.FrameRate != 0 {
		if err := w.SetFrameRate(s.FrameRate); err != nil {
			return nil, err
		}
	}
	w.Header()
	if s.Background != "" {
		// Validate has already parsed it.
		color, _ := swf.ParseColor(s.Background)
		w.SetBackgroundColor(color)
	}

	symbols := make(Symbols)
	for _, bitmap := range s.Bitmaps {
		id, err := defineBitmap(w, source, bitmap)
		if err != nil {
			return nil, fmt.Errorf("bitmap %q: %w", bitmap.Name, err)
		}
		symbols[bitmap.Name] = id
		if bitmap.Export {
			if err := w.ExportAssets(id, bitmap.Name); err != nil {
				return nil, fmt.Errorf("exporting bitmap %q: %w", bitmap.Name, err)
			}
		}
	}

	for _, sprite := range s.Sprites {
		id, err := w.DefineSpriteBegin(uint16(len(sprite.Frames)))
		if err != nil {
			return nil, fmt.Errorf("sprite %q: %w", sprite.Name, err)
		}
		for i, frame := range sprite.Frames {
			if err := writeFrame(w, symbols, frame); err != nil {
				return nil, fmt.Errorf("sprite %q frame %d: %w", sprite.Name, i, err)
			}
		}
		w.DefineSpriteEnd()
		symbols[sprite.Name] = id
		if sprite.Export {
			if err := w.ExportAssets(id, sprite.Name); err != nil {
				return nil, fmt.Errorf("exporting sprite %q: %w", sprite.Name, err)
			}
		}
	}

	for i, frame := range s.Timeline {
		if err := writeFrame(w, symbols, frame); err != nil {
			return nil, fmt.Errorf("timeline frame %d: %w", i, err)
		}
	}
	w.End()
	return symbols, nil
}

// defineBitmap embeds the JPEG and wraps it in a shape of the bitmap's
// size. The shape's ID is the one placements refer to.
func defineBitmap(w *swf.Writer, source swf.AssetSource, bitmap Bitmap) (swf.CharacterID, error) {
	width, height := bitmap.Width, bitmap.Height

	var image swf.CharacterID
	var err error
	if width != 0 {
		image, err = w.DefineBitsJPEG2File(source, bitmap.Path)
	} else {
		var data []byte
		data, err = source.ReadAsset(bitmap.Path)
		if err != nil {
			return 0, err
		}
		pixelsWide, pixelsHigh, sizeErr := asset.JPEGSize(data)
		if sizeErr != nil {
			return 0, fmt.Errorf("%s: %w", bitmap.Path, sizeErr)
		}
		if pixelsWide > maxPixels || pixelsHigh > maxPixels {
			return 0, fmt.Errorf("%s: %dx%d image exceeds %d pixels", bitmap.Path, pixelsWide, pixelsHigh, maxPixels)
		}
		width, height = int32(pixelsWide), int32(pixelsHigh)
		image, err = w.DefineBitsJPEG2(data)
	}
	if err != nil {
		return 0, err
	}

	return w.DefineBitmapShape(image, swf.PixelRect(width, height))
}

// writeFrame writes one frame's display list changes and ends it.
func writeFrame(w *swf.Writer, symbols Symbols, frame Frame) error {
	for _, depth := range frame.Remove {
		w.RemoveObject2(uint16(depth))
	}
	for _, place := range frame.Place {
		id, ok := symbols[place.Symbol]
		if !ok {
			return fmt.Errorf("unknown symbol %q", place.Symbol)
		}
		if place.Name == "" {
			w.PlaceObject2(id, uint16(place.Depth))
			continue
		}
		if err := w.PlaceObject2Named(id, uint16(place.Depth), place.Name); err != nil {
			return err
		}
	}
	if frame.Stop {
		w.DoActionStop()
	}
	return w.ShowFrame()
}
