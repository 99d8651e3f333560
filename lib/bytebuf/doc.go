// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bytebuf provides a growable, randomly-addressable byte buffer
// with an independent write cursor.
//
// Unlike [bytes.Buffer], a [Buffer] lets the caller move the cursor
// anywhere (including past the current end) and overwrite bytes that
// were already written. Writes past the end zero-extend the buffer, so
// gap bytes that were never written always read as zero.
//
// The buffer also supports moving a byte range in place with
// [Buffer.Shift]. Code that remembers positions across a shift must do
// so with a [Mark] rather than a raw offset: the buffer adjusts every
// live mark when content moves underneath it.
//
// A Buffer is not safe for concurrent use. Each output stream owns its
// own buffer for its whole lifetime.
//
// This package depends on no other swfpack packages.
package bytebuf
