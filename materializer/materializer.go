// Package materializer copies the clusterer's verdict into the output
// area. Source files are never moved or deleted.
package materializer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"imagededuper/logging"
	"imagededuper/types"
)

// TrashDirName is the subdirectory of the output root that receives
// demoted duplicates.
const TrashDirName = "trash"

// Stats counts the files written during materialization.
type Stats struct {
	KeptCopied    int
	KeptSkipped   int
	TrashedCopied int
}

// Run copies every kept image into the output root and every duplicate
// into the trash subdirectory, creating both directories if absent.
// Kept copies are first-writer-wins: a pre-existing destination is left
// untouched, which makes re-running safe. Trash copies are
// unconditional and overwrite earlier trash copies.
func Run(result *types.Result, outputDir string) (Stats, error) {
	var stats Stats

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return stats, fmt.Errorf("cannot create output directory %s: %v", outputDir, err)
	}
	trashDir := filepath.Join(outputDir, TrashDirName)
	if err := os.MkdirAll(trashDir, 0755); err != nil {
		return stats, fmt.Errorf("cannot create trash directory %s: %v", trashDir, err)
	}

	for el := result.Kept.Front(); el != nil; el = el.Next() {
		dst := filepath.Join(outputDir, filepath.Base(el.Key))
		if _, err := os.Stat(dst); err == nil {
			stats.KeptSkipped++
			continue
		}
		if err := copyFile(el.Key, dst); err != nil {
			logging.LogError("Failed to copy kept image %s: %v", el.Key, err)
			continue
		}
		stats.KeptCopied++
	}

	for el := result.Duplicates.Front(); el != nil; el = el.Next() {
		dst := filepath.Join(trashDir, filepath.Base(el.Key))
		if err := copyFile(el.Key, dst); err != nil {
			logging.LogError("Failed to copy duplicate %s to trash: %v", el.Key, err)
			continue
		}
		stats.TrashedCopied++
	}

	return stats, nil
}

// TrashDestination returns the trash path a duplicate was copied to.
func TrashDestination(outputDir, removedPath string) string {
	return filepath.Join(outputDir, TrashDirName, filepath.Base(removedPath))
}

// copyFile copies src to dst and carries over the source modification
// time, the same contract as a copy-with-metadata.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
