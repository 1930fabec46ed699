package database

import (
	"path/filepath"
	"testing"

	orderedmap "github.com/elliotchance/orderedmap/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagededuper/types"
)

func testResult() *types.Result {
	records := []types.ImageRecord{
		{Path: "/src/a.jpg", Width: 1920, Height: 1080},
		{Path: "/src/b.jpg", Width: 1280, Height: 720},
	}
	kept := orderedmap.NewOrderedMap[string, types.ImageRecord]()
	kept.Set("/src/a.jpg", records[0])
	duplicates := orderedmap.NewOrderedMap[string, types.DuplicateEdge]()
	duplicates.Set("/src/b.jpg", types.DuplicateEdge{KeptPath: "/src/a.jpg", Distance: 3})
	return types.NewResult(records, kept, duplicates)
}

func testSummary() types.SessionSummary {
	return types.SessionSummary{
		Timestamp:             "2026-08-23T10:00:00Z",
		SourceDirectory:       "/src",
		OutputDirectory:       "/out",
		TrashDirectory:        "/out/trash",
		TotalScanned:          2,
		TotalKept:             1,
		TotalDuplicates:       1,
		HashMethod:            "phash",
		HashDistanceThreshold: 5,
		Clusters:              map[string][]string{"/src/a.jpg": {"/src/b.jpg"}},
	}
}

func TestStoreAndListSessions(t *testing.T) {
	db, err := InitDatabase(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer db.Close()

	id, err := StoreSession(db, testSummary(), testResult())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	sessions, err := ListSessions(db)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	assert.Equal(t, "2026-08-23T10:00:00Z", sessions[0].Timestamp)
	assert.Equal(t, "/src", sessions[0].SourceDirectory)
	assert.Equal(t, 2, sessions[0].TotalScanned)
	assert.Equal(t, 1, sessions[0].TotalKept)
	assert.Equal(t, 1, sessions[0].TotalDuplicates)
}

func TestStoreSessionRecordsEdges(t *testing.T) {
	db, err := InitDatabase(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer db.Close()

	id, err := StoreSession(db, testSummary(), testResult())
	require.NoError(t, err)

	var removed, kept, removedRes, keptRes string
	var distance int
	err = db.QueryRow(`
		SELECT removed_path, kept_path, distance, removed_resolution, kept_resolution
		FROM duplicate_edges WHERE session_id = ?`, id).
		Scan(&removed, &kept, &distance, &removedRes, &keptRes)
	require.NoError(t, err)

	assert.Equal(t, "/src/b.jpg", removed)
	assert.Equal(t, "/src/a.jpg", kept)
	assert.Equal(t, 3, distance)
	assert.Equal(t, "1280x720", removedRes)
	assert.Equal(t, "1920x1080", keptRes)
}

func TestGetSessionStats(t *testing.T) {
	db, err := InitDatabase(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer db.Close()

	stats, err := GetSessionStats(db)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0, stats.TotalDuplicates)

	_, err = StoreSession(db, testSummary(), testResult())
	require.NoError(t, err)
	_, err = StoreSession(db, testSummary(), testResult())
	require.NoError(t, err)

	stats, err = GetSessionStats(db)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 2, stats.TotalDuplicates)
}
