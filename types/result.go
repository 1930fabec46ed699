package types

import (
	orderedmap "github.com/elliotchance/orderedmap/v2"
)

// Result partitions a run's records into survivors and demoted
// duplicates. Both maps preserve decision order, which downstream
// copies and reports rely on for stable output within a run.
type Result struct {
	Records    []ImageRecord
	Kept       *orderedmap.OrderedMap[string, ImageRecord]
	Duplicates *orderedmap.OrderedMap[string, DuplicateEdge]

	byPath map[string]ImageRecord
}

// NewResult builds a Result over the given input records.
func NewResult(records []ImageRecord, kept *orderedmap.OrderedMap[string, ImageRecord], duplicates *orderedmap.OrderedMap[string, DuplicateEdge]) *Result {
	byPath := make(map[string]ImageRecord, len(records))
	for _, r := range records {
		byPath[r.Path] = r
	}
	return &Result{
		Records:    records,
		Kept:       kept,
		Duplicates: duplicates,
		byPath:     byPath,
	}
}

// Record returns the input record for a path, whether kept or demoted.
func (r *Result) Record(path string) (ImageRecord, bool) {
	rec, ok := r.byPath[path]
	return rec, ok
}

// Clusters groups duplicate edges by kept path, in decision order. The
// grouping is derived for reporting only.
func (r *Result) Clusters() *orderedmap.OrderedMap[string, []string] {
	clusters := orderedmap.NewOrderedMap[string, []string]()
	for el := r.Duplicates.Front(); el != nil; el = el.Next() {
		removed := clusters.GetOrDefault(el.Value.KeptPath, nil)
		clusters.Set(el.Value.KeptPath, append(removed, el.Key))
	}
	return clusters
}

// ClusterMap returns the clusters as a plain map for JSON serialization.
func (r *Result) ClusterMap() map[string][]string {
	clusters := make(map[string][]string)
	for el := r.Duplicates.Front(); el != nil; el = el.Next() {
		clusters[el.Value.KeptPath] = append(clusters[el.Value.KeptPath], el.Key)
	}
	return clusters
}
