// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package swf writes SWF movie files: a fixed header followed by a
// sequence of typed, length-prefixed records called tags, optionally
// zlib-compressed after the first eight bytes.
//
// A [Writer] owns one output stream. Callers emit the header with
// [Writer.Header], then records, then [Writer.End], and finally
// [Writer.Finish] (returning the finished bytes) or [Writer.Close]
// (which also hands them to a sink and resets the writer).
//
// # Tag headers
//
// Every tag starts with a 16-bit little-endian word: the tag code in
// the top ten bits and the payload length in the low six. Lengths of
// 63 or more (and every tag in the always-extended set, which the
// player insists on) use the extended form: the low six bits are all
// ones and a 32-bit length follows.
//
// [Writer.OpenTag] takes either [Known] (the payload length is known
// up front, used for fixed records) or [Deferred] (the length is
// discovered by writing the payload). A deferred tag always starts with
// the extended header; [Writer.CloseTag] backpatches the length and, if
// the payload turned out to fit the compact form, rewrites the header as
// two bytes and shifts the payload left over the four unused bytes.
// Tags nest (a sprite holds its own tag sequence) and must be closed in
// reverse order of opening.
//
// # Contract violations
//
// Misuse that indicates a bug in the calling code panics with a
// [*ContractError]: closing a tag that was never opened, closing tags
// out of order, finishing with tags still open, writing bytes while a
// partial bit field is pending, or writing after Finish. Problems with
// the data being written (a name containing NUL, a rectangle too large
// to encode, too many characters) are returned as errors before any
// bytes of the affected record are written.
//
// A Writer is not safe for concurrent use. Independent streams need
// independent writers.
package swf
