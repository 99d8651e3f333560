// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides swfpack's CBOR configuration, used for the
// binary form of scene descriptions.
//
// Scenes are authored as YAML or JSON and may be stored compactly as
// CBOR. The same Go types serve all three formats: fields carry `json`
// tags, which fxamacker/cbor reads when no `cbor` tag is present, plus
// `yaml` tags for gopkg.in/yaml.v3.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same scene always encodes to the same bytes and can be digested. The
// decoder rejects unknown fields and duplicate map keys: a misspelled
// field in a scene is an error, not a silently ignored setting.
//
//	data, err := codec.Marshal(scene)
//	err = codec.Unmarshal(data, &scene)
package codec
