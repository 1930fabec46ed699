// Package imageprocessor decodes supported image files and computes
// their perceptual fingerprints.
package imageprocessor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imagededuper/types"
)

// LoadImage opens and decodes an image file. The decoder is selected by
// content via the registered format list, not by extension.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open image %s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode image %s: %v", path, err)
	}
	return img, nil
}

// ExtractRecord opens one image file and produces its ImageRecord:
// pixel dimensions plus the 64-bit perceptual fingerprint. Any failure
// is per-file and recoverable; the caller decides whether to continue.
func ExtractRecord(path string) (types.ImageRecord, error) {
	img, err := LoadImage(path)
	if err != nil {
		return types.ImageRecord{}, err
	}

	bounds := img.Bounds()
	hash, err := ComputeFingerprint(img)
	if err != nil {
		return types.ImageRecord{}, fmt.Errorf("cannot compute perceptual hash for %s: %v", path, err)
	}

	return types.ImageRecord{
		Path:   path,
		Hash:   hash,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
