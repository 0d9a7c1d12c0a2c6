package schema

// Registry maintains the authoritative game list: the shipped defaults plus
// a user-owned custom overlay. Defaults are never edited in place; every
// mutation acts on the overlay. Registries are plain values constructed per
// caller so tests can build isolated instances.
type Registry struct {
	defaults []GameSchema
	overlay  []GameSchema
}

// NewRegistry builds a registry from a default list and a custom overlay.
// Overlay entries whose id matches a default are deep-merged into it;
// unknown ids are appended as custom games.
func NewRegistry(defaults, overlay []GameSchema) *Registry {
	r := &Registry{}
	r.defaults = cloneAll(defaults)
	r.overlay = cloneAll(overlay)
	return r
}

// Games returns the merged, ordered game list: each default (with any
// overlay merge applied), then customs in overlay order.
func (r *Registry) Games() []GameSchema {
	overlayByID := make(map[string]GameSchema, len(r.overlay))
	for _, g := range r.overlay {
		overlayByID[g.ID] = g
	}

	out := make([]GameSchema, 0, len(r.defaults)+len(r.overlay))
	seen := make(map[string]bool, len(r.defaults))
	for _, def := range r.defaults {
		seen[def.ID] = true
		if ov, ok := overlayByID[def.ID]; ok {
			out = append(out, Merge(def, ov))
		} else {
			out = append(out, def.Clone())
		}
	}
	for _, g := range r.overlay {
		if !seen[g.ID] {
			out = append(out, g.Clone())
		}
	}
	return out
}

// Lookup returns the resolved schema for id. Callers must treat a missing
// schema as an untracked game: store raw text, never parse.
func (r *Registry) Lookup(id string) (*GameSchema, bool) {
	for _, g := range r.Games() {
		if g.ID == id {
			return &g, true
		}
	}
	return nil, false
}

// IsDefault reports whether id belongs to the shipped default set.
func (r *Registry) IsDefault(id string) bool {
	for _, g := range r.defaults {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Customs returns the games not present in the default set, in overlay
// order. This is the payload of a schema-only export.
func (r *Registry) Customs() []GameSchema {
	var out []GameSchema
	for _, g := range r.overlay {
		if !r.IsDefault(g.ID) {
			out = append(out, g.Clone())
		}
	}
	return out
}

// Overlay returns the raw custom overlay, including entries that merge
// into defaults. This is what gets persisted.
func (r *Registry) Overlay() []GameSchema {
	return cloneAll(r.overlay)
}

// Add registers a new custom game. The id must not collide with an
// existing game (default or custom).
func (r *Registry) Add(g GameSchema) error {
	if err := Validate(&g); err != nil {
		return err
	}
	if _, ok := r.Lookup(g.ID); ok {
		return ErrDuplicateGame
	}
	r.overlay = append(r.overlay, g.Clone())
	return nil
}

// Override records an overlay entry for an existing default game, merging
// user edits (extra stats, replaced rules) into it.
func (r *Registry) Override(g GameSchema) error {
	if !r.IsDefault(g.ID) {
		return ErrGameNotFound
	}
	for i := range r.overlay {
		if r.overlay[i].ID == g.ID {
			r.overlay[i] = g.Clone()
			return nil
		}
	}
	r.overlay = append(r.overlay, g.Clone())
	return nil
}

// Remove permanently deletes a custom game. Defaults cannot be removed
// through this path; they support hiding only.
func (r *Registry) Remove(id string) error {
	if r.IsDefault(id) {
		return ErrDefaultGame
	}
	for i, g := range r.overlay {
		if g.ID == id {
			r.overlay = append(r.overlay[:i], r.overlay[i+1:]...)
			return nil
		}
	}
	return ErrGameNotFound
}

// ReplaceDefaults swaps the shipped default set, preserving the custom
// overlay. This is the schema-format migration path.
func (r *Registry) ReplaceDefaults(defaults []GameSchema) {
	r.defaults = cloneAll(defaults)
}

// MergeCustoms appends imported customs whose ids are not yet registered.
// Existing entries win; already-known ids are skipped.
func (r *Registry) MergeCustoms(imported []GameSchema) int {
	added := 0
	for _, g := range imported {
		if _, ok := r.Lookup(g.ID); ok {
			continue
		}
		r.overlay = append(r.overlay, g.Clone())
		added++
	}
	return added
}

// Merge deep-merges a custom entry into its matching default. Policy is
// field-level override: every top-level field present in the custom entry
// replaces the default's, except stats, which are merged by name with base
// order first and new entries appended.
func Merge(base, custom GameSchema) GameSchema {
	if base.ID != custom.ID {
		return base.Clone()
	}
	out := base.Clone()
	if custom.Name != "" {
		out.Name = custom.Name
	}
	if custom.URL != "" {
		out.URL = custom.URL
	}
	if custom.ResultParsingRules != nil {
		cp := custom.Clone()
		out.ResultParsingRules = cp.ResultParsingRules
	}
	if custom.AverageDisplay != nil {
		ad := *custom.AverageDisplay
		out.AverageDisplay = &ad
	}
	if custom.Stats != nil {
		out.Stats = mergeStats(base.Stats, custom.Stats)
	}
	return out
}

// mergeStats keeps base entries (and their order), appending custom stats
// whose names are new.
func mergeStats(base, custom []Stat) []Stat {
	out := append([]Stat(nil), base...)
	known := make(map[string]bool, len(base))
	for _, s := range base {
		known[s.Name] = true
	}
	for _, s := range custom {
		if !known[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

func cloneAll(games []GameSchema) []GameSchema {
	out := make([]GameSchema, 0, len(games))
	for _, g := range games {
		out = append(out, g.Clone())
	}
	return out
}
