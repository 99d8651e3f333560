// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for swfpack packages.
//
// [JPEG] encodes a small gradient image so tests can embed real JPEG
// data without checking binary fixtures into the repository. The
// output is deterministic for a given size.
//
// [WriteFile] writes a fixture file, creating parent directories, and
// returns its path.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no swfpack-internal dependencies.
package testutil
