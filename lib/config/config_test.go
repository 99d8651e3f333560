// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/swfpack/lib/compress"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Profile != Development {
		t.Errorf("expected profile development, got %s", cfg.Profile)
	}
	if cfg.Writer.Version != 6 {
		t.Errorf("expected writer.version 6, got %d", cfg.Writer.Version)
	}
	if cfg.Writer.Compress {
		t.Error("expected development defaults to be uncompressed")
	}
	if cfg.Output.FileMode != "0644" {
		t.Errorf("expected file_mode 0644, got %s", cfg.Output.FileMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_RequiresSwfpackConfig(t *testing.T) {
	t.Setenv("SWFPACK_CONFIG", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when SWFPACK_CONFIG is not set")
	}
	if !strings.Contains(err.Error(), "SWFPACK_CONFIG") {
		t.Errorf("error should mention SWFPACK_CONFIG, got: %v", err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := writeConfig(t, "writer:\n  frame_rate: 12\n")
	t.Setenv("SWFPACK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Writer.FrameRate != 12 {
		t.Errorf("expected frame_rate 12, got %v", cfg.Writer.FrameRate)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
writer:
  version: 8
  compression_level: fast
assets:
  root: /srv/assets
output:
  directory: /srv/out
  file_mode: "0600"
  digest: true
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Writer.Version != 8 {
		t.Errorf("expected version 8, got %d", cfg.Writer.Version)
	}
	level, err := cfg.CompressionLevel()
	if err != nil || level != compress.LevelFast {
		t.Errorf("CompressionLevel() = %v, %v; want fast", level, err)
	}
	// Unspecified fields keep their defaults.
	if cfg.Writer.FrameRate != 30 {
		t.Errorf("expected default frame_rate 30, got %v", cfg.Writer.FrameRate)
	}
	if cfg.Assets.Root != "/srv/assets" {
		t.Errorf("expected assets.root /srv/assets, got %s", cfg.Assets.Root)
	}
	mode, err := cfg.FileMode()
	if err != nil || mode != 0o600 {
		t.Errorf("FileMode() = %v, %v; want 0600", mode, err)
	}
	if !cfg.Output.Digest {
		t.Error("expected output.digest true")
	}
	logLevel, err := cfg.LogLevel()
	if err != nil || logLevel != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v; want debug", logLevel, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "writer: [not, a, map\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestLoadFile_ReleaseDefaults(t *testing.T) {
	path := writeConfig(t, "profile: release\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if !cfg.Writer.Compress {
		t.Error("release profile should enable compression by default")
	}
	level, _ := cfg.CompressionLevel()
	if level != compress.LevelBest {
		t.Errorf("expected best compression, got %v", level)
	}
}

func TestLoadFile_ProfileOverrides(t *testing.T) {
	path := writeConfig(t, `
profile: release
writer:
  frame_rate: 24
release:
  writer:
    compress: false
    frame_rate: 60
  output:
    directory: dist
    digest: true
  log:
    level: warn
development:
  writer:
    version: 9
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Writer.Compress {
		t.Error("explicit compress: false in the release section should win")
	}
	if cfg.Writer.FrameRate != 60 {
		t.Errorf("expected frame_rate 60, got %v", cfg.Writer.FrameRate)
	}
	if cfg.Writer.Version != 6 {
		t.Errorf("development overrides should not apply, got version %d", cfg.Writer.Version)
	}
	if cfg.Output.Directory != "dist" || !cfg.Output.Digest {
		t.Errorf("output overrides not applied: %+v", cfg.Output)
	}
	if cfg.Output.FileMode != "0644" {
		t.Errorf("empty override should keep file_mode, got %s", cfg.Output.FileMode)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "auto" {
		t.Errorf("log overrides not applied: %+v", cfg.Log)
	}
}

func TestLoadFile_ExpandsPaths(t *testing.T) {
	t.Setenv("SWFPACK_ROOT", "/work")
	path := writeConfig(t, `
assets:
  root: ${SWFPACK_ROOT}/assets
output:
  directory: ${SWFPACK_OUT:-/tmp/swf}
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Assets.Root != "/work/assets" {
		t.Errorf("expected /work/assets, got %s", cfg.Assets.Root)
	}
	if cfg.Output.Directory != "/tmp/swf" {
		t.Errorf("expected /tmp/swf, got %s", cfg.Output.Directory)
	}
}

func TestExpandVars(t *testing.T) {
	vars := map[string]string{
		"HOME":         "/home/test",
		"SWFPACK_ROOT": "/var/swfpack",
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"${HOME}/movies", "/home/test/movies"},
		{"${SWFPACK_ROOT}/assets", "/var/swfpack/assets"},
		{"${UNDEFINED:-/default}", "/default"},
		{"${UNDEFINED}", ""},
		{"plain/path", "plain/path"},
		{"${HOME}/${SWFPACK_ROOT}", "/home/test//var/swfpack"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := expandVars(tt.input, vars)
			if result != tt.expected {
				t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			modify: func(c *Config) {},
		},
		{
			name:    "invalid profile",
			modify:  func(c *Config) { c.Profile = "staging" },
			wantErr: "invalid profile",
		},
		{
			name:    "version zero",
			modify:  func(c *Config) { c.Writer.Version = 0 },
			wantErr: "writer.version",
		},
		{
			name: "compression before version 6",
			modify: func(c *Config) {
				c.Writer.Version = 5
				c.Writer.Compress = true
			},
			wantErr: "writer.compress requires",
		},
		{
			name:    "unknown compression level",
			modify:  func(c *Config) { c.Writer.CompressionLevel = "maximum" },
			wantErr: "writer.compression_level",
		},
		{
			name:    "frame rate too high",
			modify:  func(c *Config) { c.Writer.FrameRate = 256 },
			wantErr: "writer.frame_rate",
		},
		{
			name:    "frame rate zero",
			modify:  func(c *Config) { c.Writer.FrameRate = 0 },
			wantErr: "writer.frame_rate",
		},
		{
			name:    "empty output directory",
			modify:  func(c *Config) { c.Output.Directory = "" },
			wantErr: "output.directory is required",
		},
		{
			name:    "non-octal file mode",
			modify:  func(c *Config) { c.Output.FileMode = "rw-r--r--" },
			wantErr: "output.file_mode",
		},
		{
			name:    "file mode with type bits",
			modify:  func(c *Config) { c.Output.FileMode = "1000644" },
			wantErr: "output.file_mode",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "log.level",
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Writer.Version = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"writer.version", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in joined error: %v", want, err)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swfpack.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
