// Package scanner discovers candidate image files under a source root
// and turns them into fingerprint records.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"imagededuper/imageprocessor"
	"imagededuper/logging"
	"imagededuper/types"
)

// FindImages recursively walks the source root and returns the paths of
// all files whose extension is on the allow-list. Unreadable entries
// and non-image files are skipped without cancelling the walk. The
// order is the filesystem traversal order, stable within one run.
func FindImages(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logging.LogWarning("Cannot access path %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if imageprocessor.IsImageFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return paths, err
	}
	return paths, nil
}

// ExtractRecords fingerprints each path in order. Decode failures are
// reported to the log sink and skipped; they never abort the pass.
// Cancellation is checked between items only, so records produced
// before a cancel remain valid.
func ExtractRecords(ctx context.Context, paths []string, logs LogSink, progress ProgressSink) ([]types.ImageRecord, ExtractStats, error) {
	stats := ExtractStats{Enumerated: len(paths)}
	records := make([]types.ImageRecord, 0, len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return records, stats, err
		}

		record, err := imageprocessor.ExtractRecord(path)
		if err != nil {
			stats.Failed++
			logging.LogImageProcessed(path, false, err.Error())
			if logs != nil {
				logs.Log(fmt.Sprintf("Failed to read %s: %v", path, err))
			}
		} else {
			stats.Hashed++
			records = append(records, record)
			logging.LogImageProcessed(path, true, "")
		}

		if progress != nil {
			progress.Update(i+1, len(paths))
		}
	}

	return records, stats, nil
}
