// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// DefaultFileMode is the permission for files written by [Dir] when
// none is configured.
const DefaultFileMode fs.FileMode = 0o644

// Dir writes each blob to a file under Root. Files are written to a
// temporary file in the same directory, synced, and renamed into
// place, so readers see either the previous file or the complete new
// one. Names may contain slashes; missing parent directories are
// created.
type Dir struct {
	// Root is the directory files are written under.
	Root string

	// Mode is the permission of new files, subject to the umask. Zero
	// means DefaultFileMode.
	Mode fs.FileMode
}

// Put writes data to Root/name.
func (d Dir) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := d.Path(name)
	if err != nil {
		return err
	}
	mode := d.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(mode))
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", name, err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// Path returns the file that name is stored in.
func (d Dir) Path(name string) (string, error) {
	if name == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return filepath.Join(d.Root, name), nil
}
