package index

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

//go:embed seed.json
var seedData []byte

// Seed returns an index over the built-in symbol directory, used when no
// directory file is configured and before the first background refresh.
func Seed() (*Index, error) {
	var records []ticker.Record
	if err := json.Unmarshal(seedData, &records); err != nil {
		return nil, fmt.Errorf("parse embedded symbol directory: %w", err)
	}
	return New(records), nil
}
