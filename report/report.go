// Package report derives the run's audit artifacts from the clusterer's
// output: two CSV logs, a JSON session summary and a Markdown report.
// Artifact writes are independent; one failure never rolls back copies
// already made or blocks the remaining artifacts.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"imagededuper/materializer"
	"imagededuper/types"
)

// Artifact file names, rooted at the output directory. The trash
// details CSV lives inside the trash subdirectory.
const (
	DuplicateLogName  = "duplicate_log.csv"
	TrashDetailsName  = "duplicate_details.csv"
	SessionJSONName   = "dedupe_session.json"
	SessionReportName = "dedupe_session_report.md"
)

// WriteDuplicateLog writes one CSV row per demoted file: where it was
// moved, both resolutions, the kept file and the Hamming distance.
func WriteDuplicateLog(outputDir string, result *types.Result) error {
	path := filepath.Join(outputDir, DuplicateLogName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create duplicate log %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Removed File", "Moved To", "Removed Resolution", "Kept File", "Kept Resolution", "Hash Distance"}); err != nil {
		return err
	}

	for el := result.Duplicates.Front(); el != nil; el = el.Next() {
		removed := el.Key
		edge := el.Value

		removedRes := "unknown"
		if rec, ok := result.Record(removed); ok {
			removedRes = rec.ResolutionString()
		}
		keptRes := "unknown"
		if rec, ok := result.Record(edge.KeptPath); ok {
			keptRes = rec.ResolutionString()
		}

		row := []string{
			removed,
			materializer.TrashDestination(outputDir, removed),
			removedRes,
			edge.KeptPath,
			keptRes,
			strconv.Itoa(edge.Distance),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteTrashDetails writes the trash-local reason log: one row per
// demoted file with a human-readable justification.
func WriteTrashDetails(outputDir string, result *types.Result) error {
	path := filepath.Join(outputDir, materializer.TrashDirName, TrashDetailsName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create trash details %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Removed File", "Reason"}); err != nil {
		return err
	}

	for el := result.Duplicates.Front(); el != nil; el = el.Next() {
		reason := fmt.Sprintf("Lower resolution than %s, distance %d", el.Value.KeptPath, el.Value.Distance)
		if err := w.Write([]string{el.Key, reason}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteSessionJSON writes the structured session summary.
func WriteSessionJSON(outputDir string, summary types.SessionSummary) error {
	path := filepath.Join(outputDir, SessionJSONName)
	data, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot marshal session summary: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write session summary %s: %v", path, err)
	}
	return nil
}

// WriteSessionReport writes the narrative Markdown report: the summary
// plus an itemized breakdown per cluster, in decision order.
func WriteSessionReport(outputDir string, summary types.SessionSummary, result *types.Result) error {
	path := filepath.Join(outputDir, SessionReportName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create session report %s: %v", path, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Dedupe Session Report\n\n")
	fmt.Fprintf(f, "**Timestamp:** %s\n\n", summary.Timestamp)
	fmt.Fprintf(f, "**Source directory:** `%s`\n\n", summary.SourceDirectory)
	fmt.Fprintf(f, "**Output directory:** `%s`\n\n", summary.OutputDirectory)
	fmt.Fprintf(f, "**Trash directory:** `%s`\n\n", summary.TrashDirectory)
	fmt.Fprintf(f, "---\n\n")

	fmt.Fprintf(f, "## Summary\n")
	fmt.Fprintf(f, "- Total images scanned: **%d**\n", summary.TotalScanned)
	fmt.Fprintf(f, "- Kept images: **%d**\n", summary.TotalKept)
	fmt.Fprintf(f, "- Duplicates: **%d**\n", summary.TotalDuplicates)
	fmt.Fprintf(f, "- Hash method: `%s`\n", summary.HashMethod)
	fmt.Fprintf(f, "- Hash distance threshold: `%d`\n\n", summary.HashDistanceThreshold)

	fmt.Fprintf(f, "## Duplicate Clusters\n\n")
	clusters := result.Clusters()
	for el := clusters.Front(); el != nil; el = el.Next() {
		fmt.Fprintf(f, "### Kept Image: `%s`\n\n", el.Key)
		for _, removed := range el.Value {
			fmt.Fprintf(f, "- `%s`\n", removed)
		}
		fmt.Fprintf(f, "\n")
	}

	return nil
}
