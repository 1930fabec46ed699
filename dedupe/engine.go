package dedupe

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"imagededuper/database"
	"imagededuper/imageprocessor"
	"imagededuper/logging"
	"imagededuper/materializer"
	"imagededuper/report"
	"imagededuper/scanner"
	"imagededuper/types"
)

// Options defines the parameters for one dedupe run.
type Options struct {
	SourceDir string
	OutputDir string
	Threshold int
	DebugMode bool

	// Logs and Progress are optional observers; nil sinks are ignored.
	Logs     scanner.LogSink
	Progress scanner.ProgressSink
}

func (o Options) log(line string) {
	if o.Logs != nil {
		o.Logs.Log(line)
	}
}

// Run drives one full dedupe pass: enumerate, fingerprint, cluster,
// materialize, report, and record the session. Cancellation is honored
// between enumeration and extraction items; the clustering pass always
// runs to completion once started so the kept/duplicate partition stays
// consistent. db may be nil, in which case no session row is recorded.
func Run(ctx context.Context, db *sql.DB, opts Options) (*types.SessionSummary, error) {
	opts.log("Scanning for images...")
	paths, err := scanner.FindImages(ctx, opts.SourceDir)
	if err != nil {
		return nil, err
	}

	opts.log(fmt.Sprintf("Found %d images.", len(paths)))
	if opts.DebugMode {
		logging.DebugLog("Found %d candidate files under %s", len(paths), opts.SourceDir)
	}

	opts.log("Computing perceptual hashes...")
	records, stats, err := scanner.ExtractRecords(ctx, paths, opts.Logs, opts.Progress)
	if err != nil {
		// Cancelled between items; records produced so far stay valid
		// but this run does not finalize.
		return nil, err
	}
	opts.log("Hashing complete.")
	if stats.Failed > 0 {
		opts.log(fmt.Sprintf("Skipped %d unreadable files.", stats.Failed))
	}

	opts.log("Finding duplicates...")
	result := Cluster(records, opts.Threshold)
	opts.log(fmt.Sprintf("Found %d duplicates.", result.Duplicates.Len()))

	opts.log("Copying kept images...")
	copyStats, err := materializer.Run(result, opts.OutputDir)
	if err != nil {
		return nil, err
	}
	opts.log(fmt.Sprintf("Copied %d kept images (%d already present), %d duplicates to trash.",
		copyStats.KeptCopied, copyStats.KeptSkipped, copyStats.TrashedCopied))

	summary := types.SessionSummary{
		Timestamp:             time.Now().Format(time.RFC3339),
		SourceDirectory:       opts.SourceDir,
		OutputDirectory:       opts.OutputDir,
		TrashDirectory:        filepath.Join(opts.OutputDir, materializer.TrashDirName),
		TotalScanned:          len(records),
		TotalKept:             result.Kept.Len(),
		TotalDuplicates:       result.Duplicates.Len(),
		HashMethod:            imageprocessor.HashMethod,
		HashDistanceThreshold: opts.Threshold,
		Clusters:              result.ClusterMap(),
	}

	// Report artifacts are independent best-effort writes; a failed
	// artifact is logged and never rolls back completed copies.
	writeArtifact(opts, "duplicate log", func() error {
		return report.WriteDuplicateLog(opts.OutputDir, result)
	})
	writeArtifact(opts, "trash details", func() error {
		return report.WriteTrashDetails(opts.OutputDir, result)
	})
	writeArtifact(opts, "session summary", func() error {
		return report.WriteSessionJSON(opts.OutputDir, summary)
	})
	writeArtifact(opts, "session report", func() error {
		return report.WriteSessionReport(opts.OutputDir, summary, result)
	})

	if db != nil {
		if _, err := database.StoreSession(db, summary, result); err != nil {
			logging.LogError("Failed to record session: %v", err)
			opts.log("Warning: failed to record session: " + err.Error())
		}
	}

	opts.log("Dedupe complete!")
	return &summary, nil
}

func writeArtifact(opts Options, name string, write func() error) {
	if err := write(); err != nil {
		logging.LogError("Failed to write %s: %v", name, err)
		opts.log(fmt.Sprintf("Warning: failed to write %s: %v", name, err))
	}
}
