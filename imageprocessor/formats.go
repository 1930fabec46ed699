package imageprocessor

import (
	"path/filepath"
	"strings"
)

// validExtensions is the fixed allow-list of image extensions the
// deduper will consider. Comparison is case-insensitive.
var validExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".gif":  true,
	".webp": true,
}

// IsImageFile checks if a file extension belongs to a supported image file.
func IsImageFile(path string) bool {
	return validExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the allow-list of recognized extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(validExtensions))
	for ext := range validExtensions {
		exts = append(exts, ext)
	}
	return exts
}
