//go:build windows

package dirchecksums

import (
	"path/filepath"
	"strings"
)

// RootFallbackName returns the drive letter for a volume root such as `C:\`,
// or "root" when there is none
func RootFallbackName(dir string) string {
	volume := strings.TrimSuffix(filepath.VolumeName(dir), ":")
	if volume == "" {
		return "root"
	}
	return volume
}
