// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress provides the whole-stream compressor used when
// finishing a compressed SWF file. The format requires a zlib stream
// (RFC 1950) covering everything after the eight-byte file prefix.
package compress

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"
)

// Compressor turns a byte slice into its compressed form. It must not
// modify or retain data.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Func adapts an ordinary function to [Compressor].
type Func func(data []byte) ([]byte, error)

// Compress calls f(data).
func (f Func) Compress(data []byte) ([]byte, error) { return f(data) }

// Level is a zlib compression level, 0 through 9.
type Level int

const (
	// LevelNone stores the data in uncompressed deflate blocks.
	LevelNone Level = 0

	// LevelBestSpeed favours throughput over ratio.
	LevelBestSpeed Level = 1

	// LevelFast is a light setting for large, repetitive inputs.
	LevelFast Level = 3

	// LevelMedium is zlib's usual default.
	LevelMedium Level = 6

	// LevelBest gives the smallest output. Writers use it unless
	// configured otherwise.
	LevelBest Level = 9
)

var levelNames = map[Level]string{
	LevelNone:      "none",
	LevelBestSpeed: "best_speed",
	LevelFast:      "fast",
	LevelMedium:    "medium",
	LevelBest:      "best",
}

// String returns the level's name, or its number for levels without
// one.
func (level Level) String() string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return strconv.Itoa(int(level))
}

// ParseLevel parses a level from its name or a digit 0-9.
func ParseLevel(text string) (Level, error) {
	for level, name := range levelNames {
		if name == text {
			return level, nil
		}
	}
	number, err := strconv.Atoi(text)
	if err != nil || number < 0 || number > 9 {
		return 0, fmt.Errorf("unknown compression level %q (want none, best_speed, fast, medium, best or 0-9)", text)
	}
	return Level(number), nil
}

// Zlib compresses with zlib framing at Level.
type Zlib struct {
	Level Level
}

// Compress returns the zlib stream for data.
func (z Zlib) Compress(data []byte) ([]byte, error) {
	if z.Level < LevelNone || z.Level > LevelBest {
		return nil, fmt.Errorf("zlib compress: level %d out of range", z.Level)
	}
	var out bytes.Buffer
	out.Grow(len(data)/2 + 64)
	writer, err := zlib.NewWriterLevel(&out, int(z.Level))
	if err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return out.Bytes(), nil
}

// Inflate decompresses a zlib stream produced by [Zlib.Compress].
func Inflate(compressed []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return data, nil
}
