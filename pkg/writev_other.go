//go:build !linux

package dirchecksums

import "os"

func writeLinesFile(file *os.File, lines [][]byte) error {
	return writeLines(file, lines)
}
