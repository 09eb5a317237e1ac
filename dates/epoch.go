package dates

import (
	"time"

	"github.com/gofhir/ccrextract/clinical"
)

// isoLayouts are tried in order when parsing a timestamp. Zoned timestamps
// are handled by the RFC 3339 layouts; layouts without a zone are interpreted
// as UTC. Trailing layouts accept the partial dates CCR documents carry.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ToEpochSeconds converts a full or partial ISO-8601 timestamp to seconds
// from epoch. An empty or unparseable string yields clinical.UnknownDate; the
// conversion never fails past this boundary.
func ToEpochSeconds(iso string) int64 {
	if iso == "" {
		return clinical.UnknownDate
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Unix()
		}
	}
	return clinical.UnknownDate
}
