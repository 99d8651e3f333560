// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash.
type Digest [32]byte

// domainKey is a BLAKE3 key. The bytes are the ASCII domain name,
// zero-padded; changing them changes every digest in the domain.
type domainKey [32]byte

var (
	fileDomainKey = domainKey{
		's', 'w', 'f', 'p', 'a', 'c', 'k', '.', 'f', 'i', 'l', 'e',
	}

	contentDomainKey = domainKey{
		's', 'w', 'f', 'p', 'a', 'c', 'k', '.', 'c', 'o', 'n', 't', 'e', 'n', 't',
	}
)

// File returns the file-domain digest of a finished movie.
func File(data []byte) Digest {
	hasher := newHasher(fileDomainKey)
	hasher.Write(data)
	return sum(hasher)
}

// Content returns the content-domain digest of an uncompressed movie
// body.
func Content(body []byte) Digest {
	hasher := newHasher(contentDomainKey)
	hasher.Write(body)
	return sum(hasher)
}

// HashFile streams the file at path through the file-domain hash.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher(fileDomainKey)
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return sum(hasher), nil
}

// Format returns the hex encoding of digest.
func Format(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// Short returns the first twelve hex characters, for log lines and
// summaries.
func Short(digest Digest) string {
	return hex.EncodeToString(digest[:6])
}

// Parse parses a 64-character hex digest.
func Parse(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

func newHasher(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func sum(hasher *blake3.Hasher) Digest {
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
