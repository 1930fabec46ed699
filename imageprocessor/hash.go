package imageprocessor

import (
	"image"

	"github.com/corona10/goimagehash"

	"imagededuper/types"
)

// HashMethod identifies the fingerprint algorithm in reports and the
// session database.
const HashMethod = "phash"

// DefaultThreshold is the default maximum Hamming distance (inclusive)
// at which two fingerprints are considered the same picture.
const DefaultThreshold = 5

// ComputeFingerprint calculates the 64-bit DCT-based perceptual hash of
// a decoded image. Identical images hash identically; minor
// recompression or resizing stays within a small Hamming distance.
func ComputeFingerprint(img image.Image) (types.Fingerprint, error) {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return 0, err
	}
	return types.Fingerprint(hash.GetHash()), nil
}
