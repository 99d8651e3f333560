// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scene describes a movie declaratively and drives an
// [swf.Writer] to produce it.
//
// A [Scene] names its bitmaps and sprites, then lists the frames of the
// main timeline. Each [Frame] removes and places characters by depth
// and may stop playback. Sprites are nested timelines built from the
// same frames and may place bitmaps or sprites defined before them.
//
// Scenes are decoded by file extension ([FormatFor]): YAML, JSON with
// comments (JSONC), or CBOR. All three use the same Go types and reject
// unknown fields.
//
//	s, err := scene.Load("intro.yaml")
//	err = s.Validate()
//	err = scene.Build(s, writer, asset.Dir(filepath.Dir(path)))
package scene
