// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sink stores finished output files. A [Sink] receives each
// file as one complete block under a logical name; there is no
// streaming or partial write.
//
// [Dir] writes files atomically under a directory, [Writer] copies
// them to a stream such as stdout, and [Memory] keeps them in memory
// for tests and dry runs.
package sink

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Sink stores named blobs.
type Sink interface {
	// Put stores data under name, replacing anything previously stored
	// there. Put must not retain data after returning.
	Put(ctx context.Context, name string, data []byte) error
}

// ErrInvalidName is returned for names that do not stay inside the
// sink (absolute paths, "..", empty names).
var ErrInvalidName = errors.New("sink: invalid name")

// Memory is a Sink that keeps copies of everything put into it. It is
// safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
}

// Put stores a copy of data.
func (m *Memory) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return ErrInvalidName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = slices.Clone(data)
	return nil
}

// Get returns the data stored under name.
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	return data, ok
}

// Names returns the stored names in sorted order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
