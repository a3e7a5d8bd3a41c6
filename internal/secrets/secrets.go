// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text
// files: the filename is the key name and the trimmed file contents are
// the value. Used as a fallback when a credential is not in the
// environment.
//
// Supported key files: deepseek-api-key, smtp-password.
package secrets

import (
	"os"
	"path/filepath"
	"strings"
)

// Read returns the trimmed contents of dir/name. A missing directory or
// file is not an error; Read returns "".
func Read(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
