//go:build linux

package dirchecksums

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/google/vectorio"
)

// writeLinesFile writes lines with writev, at most iovMax iovecs per call.
// A short write finishes the chunk with a plain write.
func writeLinesFile(file *os.File, lines [][]byte) error {
	iovecs := make([]syscall.Iovec, 0, min(len(lines), iovMax))

	for offset := 0; offset < len(lines); offset += iovMax {
		end := min(offset+iovMax, len(lines))
		chunk := lines[offset:end]

		iovecs = iovecs[:0]
		expected := 0
		for _, line := range chunk {
			iov := syscall.Iovec{Base: (*byte)(unsafe.Pointer(&line[0]))}
			iov.SetLen(len(line))
			iovecs = append(iovecs, iov)
			expected += len(line)
		}

		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs)
		if err != nil {
			return fmt.Errorf("failed to write entries chunk with vectorio: %w", err)
		}
		if nw < expected {
			if err := writeRemainder(file, chunk, nw); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeRemainder(file *os.File, chunk [][]byte, written int) error {
	for _, line := range chunk {
		if written >= len(line) {
			written -= len(line)
			continue
		}
		if _, err := file.Write(line[written:]); err != nil {
			return fmt.Errorf("failed to complete short write: %w", err)
		}
		written = 0
	}
	return nil
}
