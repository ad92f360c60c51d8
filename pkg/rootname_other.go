//go:build !windows

package dirchecksums

// RootFallbackName returns the label used for a directory with no name
// component, such as "/"
func RootFallbackName(dir string) string {
	return "root"
}
