// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes BLAKE3 identities for built movies.
//
// Two domains are kept apart with BLAKE3 keyed hashing, so the same
// bytes hash differently depending on what they are:
//
//   - [File] covers the finished file exactly as stored, compressed or
//     not. Two builds with the same file digest are byte-identical.
//   - [Content] covers the uncompressed body of a movie (everything
//     after the eight-byte prefix). It stays the same when only the
//     compression level changes.
//
// [Format] and [Parse] convert digests to and from the canonical hex
// form used in CLI output and logs.
package digest
