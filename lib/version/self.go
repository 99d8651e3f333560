// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/swfpack/lib/digest"
)

// SelfDigest returns the file-domain digest and absolute path of the
// currently running binary. On Linux os.Executable reads /proc/self/exe,
// which points at the original binary even if it has been replaced on
// disk since the process started.
func SelfDigest() (digest.Digest, string, error) {
	executable, err := os.Executable()
	if err != nil {
		return digest.Digest{}, "", fmt.Errorf("resolving own executable path: %w", err)
	}
	sum, err := digest.HashFile(executable)
	if err != nil {
		return digest.Digest{}, "", fmt.Errorf("hashing own binary at %s: %w", executable, err)
	}
	return sum, executable, nil
}
