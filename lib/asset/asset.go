// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package asset loads the external files (JPEG images) a movie embeds.
// Assets are read whole into memory; nothing is decoded or transcoded.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrEmpty is returned (wrapped in an [*Error]) for zero-length assets.
var ErrEmpty = errors.New("asset is empty")

// Source reads assets by name.
type Source interface {
	ReadAsset(name string) ([]byte, error)
}

// Error describes an asset that could not be loaded. It unwraps to the
// underlying cause, so errors.Is(err, fs.ErrNotExist) and
// errors.Is(err, ErrEmpty) work through it.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("asset %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Dir reads assets from files under a root directory. Names are
// slash-separated paths relative to the root and may not escape it.
type Dir string

// ReadAsset reads the file name under the directory.
func (d Dir) ReadAsset(name string) ([]byte, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &Error{Name: name, Err: fs.ErrInvalid}
	}
	data, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, &Error{Name: name, Err: err}
	}
	if len(data) == 0 {
		return nil, &Error{Name: name, Err: ErrEmpty}
	}
	return data, nil
}

// Map is an in-memory Source keyed by name.
type Map map[string][]byte

// ReadAsset returns the bytes stored under name.
func (m Map) ReadAsset(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, &Error{Name: name, Err: fs.ErrNotExist}
	}
	if len(data) == 0 {
		return nil, &Error{Name: name, Err: ErrEmpty}
	}
	return data, nil
}

// JPEGSize returns the pixel dimensions recorded in a JPEG's frame
// header without decoding the image.
func JPEGSize(data []byte) (width, height int, err error) {
	config, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("reading jpeg header: %w", err)
	}
	return config.Width, config.Height, nil
}
