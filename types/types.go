package types

import (
	"fmt"
	"math/bits"
)

// Fingerprint is a fixed-length 64-bit perceptual hash of an image's
// visual content. Similar images produce fingerprints with a small
// Hamming distance.
type Fingerprint uint64

// Distance returns the Hamming distance between two fingerprints.
func (f Fingerprint) Distance(other Fingerprint) int {
	return bits.OnesCount64(uint64(f) ^ uint64(other))
}

// String returns the fingerprint as a 16-digit hexadecimal string.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// ImageRecord holds the metadata for one successfully hashed image.
// Records are immutable once created and live only for the duration of
// a single run.
type ImageRecord struct {
	Path   string      `json:"path"`
	Hash   Fingerprint `json:"hash"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
}

// Area returns the pixel area of the image.
func (r ImageRecord) Area() int {
	return r.Width * r.Height
}

// ResolutionString formats the resolution as "WxH", or "unknown" when
// no dimensions were recorded.
func (r ImageRecord) ResolutionString() string {
	return FormatResolution(r.Width, r.Height)
}

// FormatResolution formats a (width, height) pair as "WxH", or
// "unknown" when either dimension is missing.
func FormatResolution(width, height int) string {
	if width <= 0 || height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// DuplicateEdge records the decision that demoted one image in favor of
// another: the path of the surviving image and the Hamming distance
// between the two fingerprints at decision time.
type DuplicateEdge struct {
	KeptPath string `json:"kept_path"`
	Distance int    `json:"distance"`
}

// SessionSummary is the structured record of one dedupe run. It is
// written verbatim to dedupe_session.json and mirrored into the session
// database.
type SessionSummary struct {
	Timestamp             string              `json:"timestamp"`
	SourceDirectory       string              `json:"source_directory"`
	OutputDirectory       string              `json:"output_directory"`
	TrashDirectory        string              `json:"trash_directory"`
	TotalScanned          int                 `json:"total_scanned"`
	TotalKept             int                 `json:"total_kept"`
	TotalDuplicates       int                 `json:"total_duplicates"`
	HashMethod            string              `json:"hash_method"`
	HashDistanceThreshold int                 `json:"hash_distance_threshold"`
	Clusters              map[string][]string `json:"clusters"`
}
