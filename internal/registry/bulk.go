package registry

import (
	"fmt"
	"slices"

	"github.com/1broseidon/galaxy/internal/shortcut"
)

// Failure records a binding that could not be registered.
type Failure struct {
	ID       string `json:"id"`
	Shortcut string `json:"shortcut"`
	Err      string `json:"error"`
}

// Skip records a binding dropped because an earlier id owns the same
// combination.
type Skip struct {
	ID          string `json:"id"`
	Shortcut    string `json:"shortcut"`
	DuplicateOf string `json:"duplicate_of"`
}

// Report summarizes a bulk registration.
type Report struct {
	Registered []string  `json:"registered"`
	Skipped    []Skip    `json:"skipped,omitempty"`
	Failed     []Failure `json:"failed,omitempty"`
}

// RegisterAll registers every binding in ascending id order. When two ids
// normalize to the same combination the first id wins and the other is
// skipped. One failing registration does not stop the rest; an error is
// returned only when nothing could be registered.
func (r *Registry) RegisterAll() (Report, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	set := r.bindings.Clone()
	owners := make(map[string]string, len(r.active))
	for id, c := range r.active {
		owners[c.String()] = id
	}
	r.mu.Unlock()

	var report Report
	for _, id := range set.IDs() {
		b := set[id]

		combo, err := shortcut.Parse(b.Shortcut)
		if err != nil {
			r.log.Error().Err(err).Str("id", id).Str("shortcut", b.Shortcut).Msg("invalid shortcut")
			report.Failed = append(report.Failed, Failure{ID: id, Shortcut: b.Shortcut, Err: err.Error()})
			continue
		}

		key := combo.String()
		if owner, dup := owners[key]; dup {
			if owner == id {
				report.Registered = append(report.Registered, id)
				continue
			}
			r.log.Warn().Str("id", id).Str("shortcut", b.Shortcut).Str("owner", owner).Msg("duplicate shortcut, skipping")
			report.Skipped = append(report.Skipped, Skip{ID: id, Shortcut: b.Shortcut, DuplicateOf: owner})
			continue
		}

		if err := r.safeRegister(combo); err != nil {
			r.log.Error().Err(err).Str("id", id).Str("shortcut", b.Shortcut).Msg("failed to register shortcut")
			report.Failed = append(report.Failed, Failure{ID: id, Shortcut: b.Shortcut, Err: err.Error()})
			continue
		}

		owners[key] = id
		report.Registered = append(report.Registered, id)
		r.mu.Lock()
		r.active[id] = combo
		r.mu.Unlock()
		r.log.Info().Str("id", id).Str("shortcut", b.Shortcut).Msg("registered shortcut")
	}

	if len(report.Failed) > 0 {
		r.log.Warn().
			Int("failed", len(report.Failed)).
			Int("registered", len(report.Registered)).
			Msg("some shortcuts could not be registered and have been disabled")
	}
	if len(report.Registered) == 0 {
		return report, fmt.Errorf("%w (%d failed, %d skipped)", ErrNoBindingsRegistered, len(report.Failed), len(report.Skipped))
	}
	return report, nil
}

// UnregisterAll releases every live registration.
func (r *Registry) UnregisterAll() {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	active := r.active
	r.active = make(map[string]shortcut.Combo)
	r.mu.Unlock()

	for id, c := range active {
		if err := r.safeUnregister(c); err != nil {
			r.log.Debug().Err(err).Str("id", id).Msg("unregister on shutdown failed")
		}
	}
}

// ReloadReport summarizes a reconciliation against the store.
type ReloadReport struct {
	Added   []string  `json:"added,omitempty"`
	Removed []string  `json:"removed,omitempty"`
	Changed []string  `json:"changed,omitempty"`
	Failed  []Failure `json:"failed,omitempty"`
}

// Reload re-reads the store after an external edit and brings live
// registrations in line with it. A missing or unparsable document leaves the
// current state untouched and returns ErrStoreUnreadable. Nothing is written
// back.
//
// Duplicates are judged against the reloaded document, so two bindings may
// trade combinations. Registrations of removed and rebound ids are released
// before any new combination is grabbed; a rebound id whose new grab fails
// gets its previous combination back when that is still free.
func (r *Registry) Reload() (ReloadReport, error) {
	if r.store == nil {
		return ReloadReport{}, nil
	}
	loaded, err := r.store.Read()
	if err != nil {
		r.log.Warn().Err(err).Msg("shortcuts file unreadable, keeping current bindings")
		return ReloadReport{}, fmt.Errorf("%w: %w", ErrStoreUnreadable, err)
	}

	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	current := r.bindings.Clone()
	previous := make(map[string]shortcut.Combo, len(r.active))
	for id, c := range r.active {
		previous[id] = c
	}
	r.mu.Unlock()

	var rep ReloadReport
	combos := make(map[string]shortcut.Combo, len(loaded))
	for _, id := range loaded.IDs() {
		b := loaded[id]
		c, err := shortcut.Parse(b.Shortcut)
		if err != nil {
			r.log.Error().Err(err).Str("id", id).Str("shortcut", b.Shortcut).Msg("invalid shortcut")
			rep.Failed = append(rep.Failed, Failure{ID: id, Shortcut: b.Shortcut, Err: err.Error()})
			continue
		}
		combos[id] = c
	}

	moving := func(id string) bool {
		c, ok := combos[id]
		if !ok {
			return false
		}
		old, exists := current[id]
		return !exists || shortcut.Normalize(old.Shortcut) != c.String()
	}

	// Bindings that keep their combination claim it first, then new and
	// rebound ids claim theirs in ascending order.
	owners := make(map[string]string, len(loaded))
	for _, id := range current.IDs() {
		if _, kept := loaded[id]; !kept || moving(id) {
			continue
		}
		key := shortcut.Normalize(current[id].Shortcut)
		if _, taken := owners[key]; !taken {
			owners[key] = id
		}
	}
	want := make(map[string]shortcut.Combo)
	for _, id := range loaded.IDs() {
		if !moving(id) {
			continue
		}
		c := combos[id]
		owner, taken := owners[c.String()]
		if !taken {
			owners[c.String()] = id
			want[id] = c
			continue
		}
		b := loaded[id]
		if _, exists := current[id]; exists {
			err := fmt.Errorf("%w: %s is used by %s", ErrDuplicateShortcut, b.Shortcut, owner)
			rep.Failed = append(rep.Failed, Failure{ID: id, Shortcut: b.Shortcut, Err: err.Error()})
			continue
		}
		r.log.Warn().Str("id", id).Str("shortcut", b.Shortcut).Str("owner", owner).Msg("duplicate shortcut, skipping")
		r.mu.Lock()
		r.bindings[id] = b
		r.mu.Unlock()
		rep.Added = append(rep.Added, id)
	}

	for _, id := range current.IDs() {
		if _, kept := loaded[id]; kept {
			continue
		}
		r.remove(id)
		rep.Removed = append(rep.Removed, id)
	}
	for _, id := range sortedIDs(want) {
		old, live := previous[id]
		if !live {
			continue
		}
		if err := r.safeUnregister(old); err != nil {
			r.log.Info().Err(err).Str("id", id).Str("shortcut", old.String()).Msg("could not unregister old shortcut")
		}
		r.mu.Lock()
		delete(r.active, id)
		r.mu.Unlock()
	}

	for _, id := range sortedIDs(want) {
		b := loaded[id]
		_, existed := current[id]
		if err := r.claim(id, want[id]); err != nil {
			r.log.Error().Err(err).Str("id", id).Str("shortcut", b.Shortcut).Msg("failed to register shortcut")
			rep.Failed = append(rep.Failed, Failure{ID: id, Shortcut: b.Shortcut, Err: err.Error()})
			if !existed {
				r.mu.Lock()
				r.bindings[id] = b
				r.mu.Unlock()
			} else if old, live := previous[id]; live {
				r.restore(id, old)
			}
			continue
		}
		r.mu.Lock()
		r.bindings[id] = b
		r.mu.Unlock()
		if existed {
			rep.Changed = append(rep.Changed, id)
		} else {
			rep.Added = append(rep.Added, id)
		}
	}

	for _, id := range loaded.IDs() {
		old, exists := current[id]
		if !exists || old.Name == loaded[id].Name {
			continue
		}
		r.mu.Lock()
		cur := r.bindings[id]
		cur.Name = loaded[id].Name
		r.bindings[id] = cur
		r.mu.Unlock()
		if !slices.Contains(rep.Changed, id) {
			rep.Changed = append(rep.Changed, id)
		}
	}
	slices.Sort(rep.Added)
	slices.Sort(rep.Changed)

	r.log.Info().
		Int("added", len(rep.Added)).
		Int("removed", len(rep.Removed)).
		Int("changed", len(rep.Changed)).
		Int("failed", len(rep.Failed)).
		Msg("shortcuts reloaded")
	return rep, nil
}

// claim registers c for id unless another id already holds it. opMu must be
// held.
func (r *Registry) claim(id string, c shortcut.Combo) error {
	if holder, held := r.holder(c); held && holder != id {
		return fmt.Errorf("%w: %s is used by %s", ErrDuplicateShortcut, c, holder)
	}
	if err := r.safeRegister(c); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRegistrationFailed, c, err)
	}
	r.mu.Lock()
	r.active[id] = c
	r.mu.Unlock()
	r.log.Info().Str("id", id).Str("shortcut", c.String()).Msg("registered shortcut")
	return nil
}

// restore re-grabs a combination released earlier in a reload. opMu must be
// held.
func (r *Registry) restore(id string, old shortcut.Combo) {
	if err := r.claim(id, old); err != nil {
		r.log.Error().Err(err).Str("id", id).Str("shortcut", old.String()).Msg("could not restore previous shortcut, binding disabled")
	}
}

// holder returns the id whose live registration is c.
func (r *Registry) holder(c shortcut.Combo) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, live := range r.active {
		if live == c {
			return id, true
		}
	}
	return "", false
}

func sortedIDs(m map[string]shortcut.Combo) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// remove drops a binding and releases its registration. opMu must be held.
func (r *Registry) remove(id string) {
	r.mu.Lock()
	c, active := r.active[id]
	delete(r.active, id)
	delete(r.bindings, id)
	r.mu.Unlock()

	if active {
		if err := r.safeUnregister(c); err != nil {
			r.log.Info().Err(err).Str("id", id).Msg("could not unregister removed shortcut")
		}
	}
}
