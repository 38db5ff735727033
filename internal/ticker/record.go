package ticker

import "strings"

// Record describes a tradeable symbol as returned by the search sources.
// Ticker is the dedup key within any result set.
type Record struct {
	Ticker      string   `json:"ticker"`
	CompanyName string   `json:"company_name"`
	Exchange    string   `json:"exchange"`
	Aliases     []string `json:"aliases,omitempty"`
}

// Key returns the canonical dedup key for the record.
func (r Record) Key() string {
	return strings.ToUpper(strings.TrimSpace(r.Ticker))
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Aliases != nil {
		out.Aliases = append([]string(nil), r.Aliases...)
	}
	return out
}

// CloneRecords copies a slice of records into a fresh backing array. Result
// slices cross the controller boundary and must not alias caller state.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
