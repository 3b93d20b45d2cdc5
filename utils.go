// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return stat.Mode().IsRegular()
}

// FileBasename returns the last element of filepath.
func FileBasename(path string) string {
	return filepath.Base(path)
}

// FileSize returns the size of the opened file f in bytes.
func FileSize(f *os.File) (int64, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// EndsWith reports whether s ends with suffix, ignoring case.
func EndsWith(s string, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}
