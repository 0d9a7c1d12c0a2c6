// Package stats computes rolling averages over stored game results.
// Raw text is re-parsed on every call; nothing derived is cached.
package stats

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/samestrin/guessr-tracker/internal/tracker/engine"
	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
	"github.com/samestrin/guessr-tracker/internal/tracker/store"
)

// DefaultWindowDays is used when a schema carries no average_display
// window of its own.
const DefaultWindowDays = 30

// Aggregator computes trailing-window averages of a parsed field.
type Aggregator struct {
	reg *schema.Registry
	st  store.Store
	eng *engine.Engine
	now func() time.Time
}

// NewAggregator wires an aggregator over a registry and store.
func NewAggregator(reg *schema.Registry, st store.Store) *Aggregator {
	return &Aggregator{
		reg: reg,
		st:  st,
		eng: engine.New(reg),
		now: time.Now,
	}
}

// Mean returns the raw mean of field across the game's results within
// the trailing windowDays-day window ending today. If no stored result
// falls inside the window, the whole history is used instead, so a
// player whose only data predates the window still sees it. Entries
// whose CompletionState is explicitly false never count, and entries
// missing the field are skipped with a diagnostic. ok is false when no
// eligible entry remains.
func (a *Aggregator) Mean(ctx context.Context, gameID, field string, windowDays int) (mean float64, ok bool, err error) {
	results, err := a.st.ListResults(ctx, gameID)
	if err != nil {
		return 0, false, err
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	candidates := a.inWindow(results, windowDays)
	if len(candidates) == 0 {
		candidates = results
	}

	var values []float64
	for _, r := range candidates {
		parsed, perr := a.eng.Parse(gameID, r.RawOutput)
		if perr != nil {
			log.Warn().Str("game", gameID).Str("date", r.Date).Err(perr).
				Msg("skipping unparseable result")
			continue
		}
		if cs, present := parsed[schema.CompletionStateField].(bool); present && !cs {
			continue
		}
		v, present := numericField(parsed, field)
		if !present {
			log.Warn().Str("game", gameID).Str("date", r.Date).Str("field", field).
				Msg("result has no value for averaged field")
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, false, nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true, nil
}

// Average returns the mean formatted as a bare number, honoring only
// the format specifier carried by the game's display template. The
// template's surrounding text is a presentation concern and never
// appears here; callers that want the decorated form render the mean
// through RenderTemplate themselves.
func (a *Aggregator) Average(ctx context.Context, gameID, field string, windowDays int) (formatted string, ok bool, err error) {
	mean, ok, err := a.Mean(ctx, gameID, field, windowDays)
	if err != nil || !ok {
		return "", ok, err
	}
	return FormatAverage(a.template(gameID), mean), true, nil
}

// AverageDisplay renders the game's configured average through its
// display template, using the schema's field and window. ok is false
// when the game has no average_display or no eligible data.
func (a *Aggregator) AverageDisplay(ctx context.Context, gameID string) (string, bool, error) {
	g, found := a.reg.Lookup(gameID)
	if !found {
		return "", false, schema.ErrGameNotFound
	}
	if g.AverageDisplay == nil {
		return "", false, nil
	}
	mean, ok, err := a.Mean(ctx, gameID, g.AverageDisplay.Field, g.AverageDisplay.Days)
	if err != nil || !ok {
		return "", ok, err
	}
	return RenderTemplate(g.AverageDisplay.Template, mean), true, nil
}

func (a *Aggregator) template(gameID string) string {
	if g, found := a.reg.Lookup(gameID); found && g.AverageDisplay != nil {
		return g.AverageDisplay.Template
	}
	return ""
}

// inWindow filters to dates in the trailing window ending today,
// inclusive on both ends.
func (a *Aggregator) inWindow(results []store.StoredResult, windowDays int) []store.StoredResult {
	today := a.now()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -(windowDays - 1))
	end := cutoff.AddDate(0, 0, windowDays)

	var out []store.StoredResult
	for _, r := range results {
		d, err := time.ParseInLocation(store.DateLayout, r.Date, today.Location())
		if err != nil {
			log.Warn().Str("date", r.Date).Msg("skipping result with malformed date")
			continue
		}
		if !d.Before(cutoff) && d.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

func numericField(parsed engine.Result, field string) (float64, bool) {
	switch v := parsed[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
