package dirchecksums

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// HashString returns the digest as uppercase hex, two digits per byte
func HashString(sum []byte) string {
	const hexChars = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(sum) * 2)
	for _, b := range sum {
		sb.WriteByte(hexChars[b>>4])
		sb.WriteByte(hexChars[b&0xf])
	}
	return sb.String()
}

// HashBytes hashes an in-memory buffer
func HashBytes(data []byte, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	hasher.Write(data)
	return HashString(hasher.Sum(nil))
}

// HashFile calculates the hash of a file reading it in bufferSize chunks and
// checks for cancellation between reads. It returns the hex digest and the
// number of bytes read.
func HashFile(ctx context.Context, fs afero.Fs, filePath string, algorithm *HashAlgorithm, bufferSize int) (string, int64, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	if bufferSize <= 0 {
		bufferSize = 64 * 1024
	}

	hasher := algorithm.NewFunc()
	buffer := make([]byte, bufferSize)
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return "", total, err
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
			total += int64(n)
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", total, fmt.Errorf("failed to read from file %s: %w", filePath, err)
		}
	}

	debugLog("hash", "hashed file", "path", filePath, "bytes", total)
	return HashString(hasher.Sum(nil)), total, nil
}

// ParseHumanSize parses human-readable size strings (e.g. "64KiB", "2M", "1GB")
func ParseHumanSize(sizeStr string) (int, error) {
	if strings.TrimSpace(sizeStr) == "" {
		return 0, fmt.Errorf("empty size string")
	}

	size, err := humanize.ParseBytes(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	if size == 0 {
		return 0, fmt.Errorf("size must be positive: %s", sizeStr)
	}
	if size > math.MaxInt32 {
		return 0, fmt.Errorf("size too large: %s", sizeStr)
	}

	return int(size), nil
}
