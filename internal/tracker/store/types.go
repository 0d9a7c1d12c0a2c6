// Package store implements durable, write-through persistence of raw game
// results. Only raw text is persisted; derived fields are always
// re-computed by the engine, never cached.
package store

import "time"

// DateLayout is the calendar-day key format for stored results.
const DateLayout = "2006-01-02"

// StoredResult is one pasted result for a (game, date) pair. Date is the
// uniqueness key within a game.
type StoredResult struct {
	Date      string `json:"date"`
	RawOutput string `json:"rawOutput"`
}

// AppData is the top-level persisted state. It is loaded once at startup,
// mutated in place and flushed after every mutation.
type AppData struct {
	GameResults map[string][]StoredResult `json:"gameResults"`
	HiddenGames []string                  `json:"hiddenGames"`
	LastUpdated string                    `json:"lastUpdated"`
}

// NewAppData returns an empty, initialized snapshot.
func NewAppData() AppData {
	return AppData{
		GameResults: map[string][]StoredResult{},
		HiddenGames: []string{},
		LastUpdated: time.Now().Format(time.RFC3339),
	}
}

// normalize backfills nil collections after deserialization so callers
// never see nil maps or slices.
func (d *AppData) normalize() {
	if d.GameResults == nil {
		d.GameResults = map[string][]StoredResult{}
	}
	if d.HiddenGames == nil {
		d.HiddenGames = []string{}
	}
}

// Clone returns a deep copy of the snapshot.
func (d AppData) Clone() AppData {
	out := AppData{
		GameResults: make(map[string][]StoredResult, len(d.GameResults)),
		HiddenGames: append([]string(nil), d.HiddenGames...),
		LastUpdated: d.LastUpdated,
	}
	if out.HiddenGames == nil {
		out.HiddenGames = []string{}
	}
	for id, results := range d.GameResults {
		out.GameResults[id] = append([]StoredResult(nil), results...)
	}
	return out
}

// LocalToday returns today's date in the local time zone. The local
// calendar day, not UTC, keys daily results to avoid off-by-one entries
// near midnight.
func LocalToday() string {
	return time.Now().Format(DateLayout)
}
