//go:build !unix

package dirchecksums

import "github.com/spf13/afero"

func dirIdentity(fs afero.Fs, absPath string) string {
	return pathIdentity(fs, absPath)
}
