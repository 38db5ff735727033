// Package index provides the offline ticker directory used for instant
// local suggestions while a remote search is in flight.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

type entry struct {
	record       ticker.Record
	tickerLower  string
	companyLower string
	aliasesLower []string
	haystack     string
}

// Index holds the symbol directory. Search takes a read lock and Replace a
// write lock, so background refreshes never tear a result set.
type Index struct {
	mu      sync.RWMutex
	entries []entry
}

// New builds an index over the given records.
func New(records []ticker.Record) *Index {
	idx := &Index{}
	idx.Replace(records)
	return idx
}

// Load reads a JSON directory file and builds an index from it.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbol directory: %w", err)
	}
	var records []ticker.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse symbol directory %s: %w", path, err)
	}
	return New(records), nil
}

// Replace swaps the directory contents in one atomic step.
func (x *Index) Replace(records []ticker.Record) {
	entries := make([]entry, 0, len(records))
	for _, rec := range records {
		if rec.Key() == "" {
			continue
		}
		e := entry{
			record:       rec.Clone(),
			tickerLower:  strings.ToLower(strings.TrimSpace(rec.Ticker)),
			companyLower: strings.ToLower(rec.CompanyName),
		}
		parts := []string{e.tickerLower, e.companyLower}
		for _, alias := range rec.Aliases {
			lower := strings.ToLower(strings.TrimSpace(alias))
			if lower == "" {
				continue
			}
			e.aliasesLower = append(e.aliasesLower, lower)
			parts = append(parts, lower)
		}
		e.haystack = strings.Join(parts, " ")
		entries = append(entries, e)
	}

	x.mu.Lock()
	x.entries = entries
	x.mu.Unlock()
}

// Len returns the number of records in the directory.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Search returns up to limit records ranked for the query. Ranking is a
// cascade: exact ticker, ticker prefix, alias match, company prefix,
// substring anywhere, then fuzzy matches ordered by edit distance.
func (x *Index) Search(query string, limit int) []ticker.Record {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || limit <= 0 {
		return nil
	}
	lower := strings.ToLower(trimmed)

	x.mu.RLock()
	defer x.mu.RUnlock()

	picked := make([]int, 0, limit)
	seen := make(map[int]struct{}, limit)
	take := func(i int) bool {
		if _, ok := seen[i]; ok {
			return len(picked) < limit
		}
		seen[i] = struct{}{}
		picked = append(picked, i)
		return len(picked) < limit
	}

	passes := []func(entry) bool{
		func(e entry) bool { return e.tickerLower == lower },
		func(e entry) bool { return strings.HasPrefix(e.tickerLower, lower) },
		func(e entry) bool {
			for _, alias := range e.aliasesLower {
				if alias == lower || strings.HasPrefix(alias, lower) {
					return true
				}
			}
			return false
		},
		func(e entry) bool { return strings.HasPrefix(e.companyLower, lower) },
		func(e entry) bool { return strings.Contains(e.haystack, lower) },
	}
	for _, match := range passes {
		for i, e := range x.entries {
			if !match(e) {
				continue
			}
			if !take(i) {
				return x.collect(picked)
			}
		}
	}

	haystacks := make([]string, len(x.entries))
	for i, e := range x.entries {
		haystacks[i] = e.haystack
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, haystacks)
	sort.SliceStable(ranks, func(a, b int) bool {
		if ranks[a].Distance != ranks[b].Distance {
			return ranks[a].Distance < ranks[b].Distance
		}
		return ranks[a].OriginalIndex < ranks[b].OriginalIndex
	})
	for _, rank := range ranks {
		if rank.OriginalIndex < 0 || rank.OriginalIndex >= len(x.entries) {
			continue
		}
		if !take(rank.OriginalIndex) {
			break
		}
	}

	return x.collect(picked)
}

func (x *Index) collect(picked []int) []ticker.Record {
	if len(picked) == 0 {
		return nil
	}
	out := make([]ticker.Record, 0, len(picked))
	for _, i := range picked {
		out = append(out, x.entries[i].record.Clone())
	}
	return out
}
