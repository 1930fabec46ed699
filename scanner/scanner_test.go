package scanner

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	lines   []string
	updates [][2]int
}

func (c *captureSink) Log(line string) { c.lines = append(c.lines, line) }

func (c *captureSink) Update(current, total int) {
	c.updates = append(c.updates, [2]int{current, total})
}

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	require.NoError(t, png.Encode(f, img))
}

func TestFindImagesRecursesAndFilters(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "top.png"), 8, 8)
	writeTestPNG(t, filepath.Join(root, "nested", "deep", "inner.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("skip"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photo.JPG"), []byte("ext only"), 0644))

	paths, err := FindImages(context.Background(), root)
	require.NoError(t, err)

	assert.Len(t, paths, 3)
	assert.Contains(t, paths, filepath.Join(root, "top.png"))
	assert.Contains(t, paths, filepath.Join(root, "nested", "deep", "inner.png"))
	// Extension filtering is case-insensitive and does not open the file.
	assert.Contains(t, paths, filepath.Join(root, "photo.JPG"))
}

func TestFindImagesCancellation(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "a.png"), 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindImages(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractRecordsSkipsFailures(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.png")
	bad := filepath.Join(root, "bad.png")
	writeTestPNG(t, good, 16, 16)
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0644))

	sink := &captureSink{}
	records, stats, err := ExtractRecords(context.Background(), []string{good, bad}, sink, sink)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Enumerated)
	assert.Equal(t, 1, stats.Hashed)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, records, 1)
	assert.Equal(t, good, records[0].Path)
	assert.Equal(t, 16, records[0].Width)

	// The failure surfaced on the log sink and progress covered both items.
	require.NotEmpty(t, sink.lines)
	assert.Contains(t, sink.lines[0], bad)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, sink.updates)
}

func TestExtractRecordsCancelKeepsPartialResults(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.png")
	writeTestPNG(t, a, 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, _, err := ExtractRecords(ctx, []string{a}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	// Nothing processed after the cancel, and whatever exists is valid.
	assert.Empty(t, records)
}

func TestExtractRecordsNilSinks(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.png")
	writeTestPNG(t, a, 8, 8)

	records, stats, err := ExtractRecords(context.Background(), []string{a}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, stats.Hashed)
}
