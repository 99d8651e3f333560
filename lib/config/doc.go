// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for swfpack.
//
// Configuration is loaded from a single file specified by either the
// SWFPACK_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no file
// search; when neither is given the CLI uses [Default].
//
// The file may contain profile sections (development, release) that
// override base values when [Config].Profile matches. The release
// profile defaults to compressed output at the best compression
// level; development builds are left uncompressed so they are quick to
// produce and easy to inspect.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${SWFPACK_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Writer, Assets, Output, Log
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
