//go:build unix

package dirchecksums

import (
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// dirIdentity returns device and inode for directories on the real filesystem
func dirIdentity(fs afero.Fs, absPath string) string {
	if _, ok := fs.(*afero.OsFs); ok {
		var st unix.Stat_t
		if err := unix.Stat(absPath, &st); err == nil {
			return fmt.Sprintf("ino:%d:%d", uint64(st.Dev), uint64(st.Ino))
		}
	}
	return pathIdentity(fs, absPath)
}
