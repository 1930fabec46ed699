// Package dedupe implements the near-duplicate clustering policy and
// the pipeline that drives a full dedupe run.
package dedupe

import (
	orderedmap "github.com/elliotchance/orderedmap/v2"

	"imagededuper/types"
)

// Cluster partitions records into a kept set and a duplicate map using
// pairwise Hamming distance with an inclusive threshold.
//
// Policy, preserved exactly:
//   - each record not yet demoted anchors a pass over all later records;
//   - pairs above the threshold are independent;
//   - pairs with identical (width, height) are both kept, no edge recorded;
//   - otherwise the strictly greater pixel area survives; on equal area
//     (different aspect ratio) the earlier-indexed record survives, which
//     is why the comparison is >= and must stay >=;
//   - when the anchor itself is demoted mid-pass, the pass finishes
//     against the stale anchor. The anchor is only excluded once the
//     outer loop reaches it again.
//
// O(n²) distance computations; acceptable for collections in the
// thousands, which is the stated ceiling for this tool.
func Cluster(records []types.ImageRecord, threshold int) *types.Result {
	kept := orderedmap.NewOrderedMap[string, types.ImageRecord]()
	duplicates := orderedmap.NewOrderedMap[string, types.DuplicateEdge]()

	for i := 0; i < len(records); i++ {
		a := records[i]
		if _, demoted := duplicates.Get(a.Path); demoted {
			continue
		}
		if _, present := kept.Get(a.Path); !present {
			kept.Set(a.Path, a)
		}

		for j := i + 1; j < len(records); j++ {
			b := records[j]
			if _, demoted := duplicates.Get(b.Path); demoted {
				continue
			}

			dist := a.Hash.Distance(b.Hash)
			if dist > threshold {
				continue
			}

			// Exact resolution tie: keep both, no edge.
			if a.Width == b.Width && a.Height == b.Height {
				continue
			}

			if a.Area() >= b.Area() {
				duplicates.Set(b.Path, types.DuplicateEdge{KeptPath: a.Path, Distance: dist})
			} else {
				duplicates.Set(a.Path, types.DuplicateEdge{KeptPath: b.Path, Distance: dist})
				kept.Delete(a.Path)
				kept.Set(b.Path, b)
			}
		}
	}

	return types.NewResult(records, kept, duplicates)
}
