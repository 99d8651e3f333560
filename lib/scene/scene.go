// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/bureau-foundation/swfpack/lib/swf"
)

// ErrInvalid is wrapped by every error [Scene.Validate] returns.
var ErrInvalid = errors.New("invalid scene")

// Scene is a complete movie description.
type Scene struct {
	// Stage is the visible area in pixels.
	Stage Stage `json:"stage" yaml:"stage"`

	// FrameRate in frames per second. Zero leaves the writer's rate.
	FrameRate float64 `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`

	// Background is "#RRGGBB". Empty writes no background tag.
	Background string `json:"background,omitempty" yaml:"background,omitempty"`

	// Compress overrides the configured compression when set.
	Compress *bool `json:"compress,omitempty" yaml:"compress,omitempty"`

	Bitmaps  []Bitmap `json:"bitmaps,omitempty" yaml:"bitmaps,omitempty"`
	Sprites  []Sprite `json:"sprites,omitempty" yaml:"sprites,omitempty"`
	Timeline []Frame  `json:"timeline,omitempty" yaml:"timeline,omitempty"`
}

// Stage is a size in pixels.
type Stage struct {
	Width  int32 `json:"width" yaml:"width"`
	Height int32 `json:"height" yaml:"height"`
}

// Bitmap is a JPEG image shown as a rectangle of its own size.
type Bitmap struct {
	Name string `json:"name" yaml:"name"`

	// Path names the JPEG in the asset source.
	Path string `json:"path" yaml:"path"`

	// Width and Height in pixels. When both are zero they are read
	// from the JPEG.
	Width  int32 `json:"width,omitempty" yaml:"width,omitempty"`
	Height int32 `json:"height,omitempty" yaml:"height,omitempty"`

	// Export makes the shape available to ActionScript under Name.
	Export bool `json:"export,omitempty" yaml:"export,omitempty"`
}

// Sprite is a named nested timeline.
type Sprite struct {
	Name   string  `json:"name" yaml:"name"`
	Export bool    `json:"export,omitempty" yaml:"export,omitempty"`
	Frames []Frame `json:"frames" yaml:"frames"`
}

// Frame is one frame of a timeline. Removals happen before placements.
type Frame struct {
	Place  []Placement `json:"place,omitempty" yaml:"place,omitempty"`
	Remove []int       `json:"remove,omitempty" yaml:"remove,omitempty"`
	Stop   bool        `json:"stop,omitempty" yaml:"stop,omitempty"`
}

// Placement puts a symbol (a bitmap or sprite name) at a depth.
type Placement struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Depth  int    `json:"depth" yaml:"depth"`

	// Name is the optional instance name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// FrameRect returns the stage rectangle in twips.
func (s *Scene) FrameRect() swf.Rect {
	return swf.PixelRect(s.Stage.Width, s.Stage.Height)
}

// Compression returns the scene's compression override, or fallback.
func (s *Scene) Compression(fallback bool) bool {
	if s.Compress != nil {
		return *s.Compress
	}
	return fallback
}

// maxPixels keeps pixel sizes inside the signed 31-bit twip range the
// rectangle encoding can carry.
const maxPixels = (1<<30 - 1) / swf.TwipsPerPixel

// Validate checks the scene and returns every problem found, joined.
func (s *Scene) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Stage.Width <= 0 || s.Stage.Height <= 0 {
		fail("stage must have a positive width and height, got %dx%d", s.Stage.Width, s.Stage.Height)
	} else if s.Stage.Width > maxPixels || s.Stage.Height > maxPixels {
		fail("stage %dx%d exceeds %d pixels", s.Stage.Width, s.Stage.Height, maxPixels)
	}
	if s.FrameRate != 0 && !(s.FrameRate > 0 && s.FrameRate < 256) {
		fail("frame_rate must be greater than 0 and less than 256, got %v", s.FrameRate)
	}
	if s.Background != "" {
		if _, err := swf.ParseColor(s.Background); err != nil {
			fail("background: %v", err)
		}
	}

	// Symbols become visible in definition order: bitmaps, then sprites.
	defined := make(map[string]bool)
	define := func(kind string, index int, name string) {
		switch {
		case name == "":
			fail("%s[%d]: name is required", kind, index)
		case defined[name]:
			fail("%s[%d]: duplicate symbol name %q", kind, index, name)
		default:
			if err := swf.ValidateText(name); err != nil {
				fail("%s[%d]: name: %v", kind, index, err)
			}
			defined[name] = true
		}
	}

	for i, bitmap := range s.Bitmaps {
		define("bitmaps", i, bitmap.Name)
		if bitmap.Path == "" {
			fail("bitmaps[%d] %q: path is required", i, bitmap.Name)
		}
		sized := bitmap.Width != 0 || bitmap.Height != 0
		if sized && (bitmap.Width <= 0 || bitmap.Height <= 0) {
			fail("bitmaps[%d] %q: width and height must both be positive or both omitted", i, bitmap.Name)
		} else if bitmap.Width > maxPixels || bitmap.Height > maxPixels {
			fail("bitmaps[%d] %q: size %dx%d exceeds %d pixels", i, bitmap.Name, bitmap.Width, bitmap.Height, maxPixels)
		}
	}

	for i, sprite := range s.Sprites {
		where := fmt.Sprintf("sprites[%d] %q", i, sprite.Name)
		if len(sprite.Frames) == 0 {
			fail("%s: at least one frame is required", where)
		} else if len(sprite.Frames) > math.MaxUint16 {
			fail("%s: %d frames exceeds %d", where, len(sprite.Frames), math.MaxUint16)
		}
		// A sprite cannot contain itself, so its frames are checked
		// before its name is defined.
		for j, frame := range sprite.Frames {
			errs = append(errs, frame.validate(fmt.Sprintf("%s frames[%d]", where, j), defined)...)
		}
		define("sprites", i, sprite.Name)
	}

	if len(s.Timeline) > math.MaxUint16 {
		fail("timeline: %d frames exceeds %d", len(s.Timeline), math.MaxUint16)
	}
	for i, frame := range s.Timeline {
		errs = append(errs, frame.validate(fmt.Sprintf("timeline[%d]", i), defined)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func (f Frame) validate(where string, defined map[string]bool) []error {
	var errs []error
	for _, depth := range f.Remove {
		if !validDepth(depth) {
			errs = append(errs, fmt.Errorf("%s: remove depth %d outside 1..%d", where, depth, math.MaxUint16))
		}
	}
	for k, place := range f.Place {
		if !defined[place.Symbol] {
			errs = append(errs, fmt.Errorf("%s place[%d]: unknown symbol %q", where, k, place.Symbol))
		}
		if !validDepth(place.Depth) {
			errs = append(errs, fmt.Errorf("%s place[%d]: depth %d outside 1..%d", where, k, place.Depth, math.MaxUint16))
		}
		if place.Name != "" {
			if err := swf.ValidateText(place.Name); err != nil {
				errs = append(errs, fmt.Errorf("%s place[%d]: name: %w", where, k, err))
			}
		}
	}
	return errs
}

func validDepth(depth int) bool {
	return depth >= 1 && depth <= math.MaxUint16
}
