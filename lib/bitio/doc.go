// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitio packs and unpacks variable-width bit fields,
// most-significant bit first.
//
// A [Writer] accumulates fields into a pending byte and hands each
// completed byte to an [io.ByteWriter]. A field that does not fit in
// the free bits of the pending byte is split: its high bits complete
// the byte and the rest continue in the next one. [Writer.Flush] emits
// a final partial byte padded with zero bits, which is how structures
// built from bit fields end on a byte boundary.
//
// A [Reader] walks a byte slice in the same order. It exists to read
// back fields that were written with a Writer (tests, self-checks); it
// knows nothing about any particular file format.
package bitio
