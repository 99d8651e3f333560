// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrTerminal is returned by [Writer] when asked to write binary data
// to an interactive terminal.
var ErrTerminal = errors.New("sink: refusing to write binary output to a terminal")

// Writer is a Sink that copies every blob to an io.Writer, ignoring
// the name. It is meant for stdout pipelines.
type Writer struct {
	out           io.Writer
	allowTerminal bool
}

// NewWriter returns a Writer over out. Unless allowTerminal is set,
// Put fails with ErrTerminal when out is a terminal.
func NewWriter(out io.Writer, allowTerminal bool) *Writer {
	return &Writer{out: out, allowTerminal: allowTerminal}
}

// Put writes data to the underlying writer.
func (w *Writer) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.allowTerminal {
		if file, ok := w.out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return ErrTerminal
		}
	}
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
