package filesystem

import "strings"

// ResolvePath converts a file:// URI to a local path for opening.
// Bare paths pass through unchanged.
func ResolvePath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// FileURI converts a local path to the file:// form written in reports.
func FileURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}
