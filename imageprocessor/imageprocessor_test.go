package imageprocessor

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func uniformImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"photo.bmp", true},
		{"photo.tiff", true},
		{"photo.gif", true},
		{"photo.webp", true},
		{"photo.WEBP", true},
		{"photo.txt", false},
		{"photo.tif", false},
		{"photo.raw", false},
		{"photo", false},
		{"dir/.jpg/file", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, IsImageFile(tc.path), "path %q", tc.path)
	}
}

func TestExtractRecordDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "white.png")
	writePNG(t, path, uniformImage(120, 80, color.White))

	record, err := ExtractRecord(path)
	require.NoError(t, err)

	assert.Equal(t, path, record.Path)
	assert.Equal(t, 120, record.Width)
	assert.Equal(t, 80, record.Height)
}

func TestExtractRecordDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "white.png")
	writePNG(t, path, uniformImage(64, 64, color.White))

	first, err := ExtractRecord(path)
	require.NoError(t, err)
	second, err := ExtractRecord(path)
	require.NoError(t, err)

	assert.Equal(t, first.Hash, second.Hash)
	assert.Equal(t, 0, first.Hash.Distance(second.Hash))
}

func TestFingerprintSurvivesLosslessReencode(t *testing.T) {
	// The same pixels through two separate PNG encodes must land on the
	// same fingerprint.
	dir := t.TempDir()
	img := uniformImage(100, 100, color.RGBA{R: 200, G: 180, B: 40, A: 255})

	pathA := filepath.Join(dir, "a.png")
	pathB := filepath.Join(dir, "b.png")
	writePNG(t, pathA, img)
	writePNG(t, pathB, img)

	recA, err := ExtractRecord(pathA)
	require.NoError(t, err)
	recB, err := ExtractRecord(pathB)
	require.NoError(t, err)

	assert.Equal(t, 0, recA.Hash.Distance(recB.Hash))
}

func TestFingerprintStableAcrossResize(t *testing.T) {
	// The same flat content at different resolutions stays within the
	// default duplicate threshold.
	dir := t.TempDir()
	pathBig := filepath.Join(dir, "big.png")
	pathSmall := filepath.Join(dir, "small.png")
	writePNG(t, pathBig, uniformImage(200, 200, color.White))
	writePNG(t, pathSmall, uniformImage(100, 100, color.White))

	big, err := ExtractRecord(pathBig)
	require.NoError(t, err)
	small, err := ExtractRecord(pathSmall)
	require.NoError(t, err)

	assert.LessOrEqual(t, big.Hash.Distance(small.Hash), DefaultThreshold)
}

func TestExtractRecordFailures(t *testing.T) {
	dir := t.TempDir()

	// Corrupt file with an image extension.
	corrupt := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image at all"), 0644))
	_, err := ExtractRecord(corrupt)
	assert.Error(t, err)

	// Missing file.
	_, err = ExtractRecord(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	assert.Len(t, exts, 7)
	assert.Contains(t, exts, ".jpg")
	assert.Contains(t, exts, ".webp")
}
