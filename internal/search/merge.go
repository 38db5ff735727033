package search

import "github.com/marketpeek/tickerpick/internal/ticker"

// Merge combines remote and local result sets into one ranked, deduplicated,
// size-capped list. Remote results come first (freshest), then local results
// not already present by ticker key, truncated to limit. Dedup keeps the
// first occurrence, so the result is deterministic for identical inputs.
func Merge(remote, local []ticker.Record, limit int) []ticker.Record {
	if limit <= 0 {
		return nil
	}
	merged := make([]ticker.Record, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, set := range [][]ticker.Record{remote, local} {
		for _, rec := range set {
			key := rec.Key()
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, rec.Clone())
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}
