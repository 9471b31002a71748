// Package registry keeps shortcut bindings and live global-hotkey
// registrations consistent, and dispatches fired hotkeys to window actions.
package registry

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"github.com/1broseidon/galaxy/internal/bindings"
	"github.com/1broseidon/galaxy/internal/shortcut"
)

var (
	ErrNotFound             = errors.New("shortcut binding not found")
	ErrInvalidFormat        = shortcut.ErrInvalidFormat
	ErrRegistrationFailed   = errors.New("hotkey registration failed")
	ErrDuplicateShortcut    = errors.New("shortcut already bound")
	ErrPersistence          = errors.New("failed to persist shortcuts")
	ErrNoBindingsRegistered = errors.New("no shortcuts could be registered")
	ErrStoreUnreadable      = errors.New("shortcuts file unreadable")
)

// Hotkeys is the OS global-hotkey facility.
type Hotkeys interface {
	Register(c shortcut.Combo) error
	Unregister(c shortcut.Combo) error
}

// Store persists the binding set. Read reports a missing or corrupt document
// as an error rather than substituting defaults.
type Store interface {
	Read() (bindings.Set, error)
	Save(set bindings.Set) error
}

// Entry is a binding as reported to callers.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Shortcut   string `json:"shortcut"`
	Normalized string `json:"normalized"`
	Active     bool   `json:"active"`
}

// Registry owns the binding set. mu guards bindings and active and is never
// held across a Hotkeys call; opMu serializes operations that change
// registrations.
type Registry struct {
	hotkeys Hotkeys
	store   Store
	log     zerolog.Logger

	opMu sync.Mutex

	mu       sync.Mutex
	bindings bindings.Set
	active   map[string]shortcut.Combo
}

// New creates a registry over an initial binding set.
func New(set bindings.Set, hotkeys Hotkeys, store Store, log zerolog.Logger) *Registry {
	if set == nil {
		set = bindings.Set{}
	}
	return &Registry{
		hotkeys:  hotkeys,
		store:    store,
		log:      log,
		bindings: set.Clone(),
		active:   make(map[string]shortcut.Combo),
	}
}

// Get returns the binding for id.
func (r *Registry) Get(id string) (bindings.Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[id]
	return b, ok
}

// Snapshot returns a copy of the binding set.
func (r *Registry) Snapshot() bindings.Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bindings.Clone()
}

// Entries returns every binding sorted by id.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.bindings))
	for _, id := range r.bindings.IDs() {
		b := r.bindings[id]
		_, active := r.active[id]
		out = append(out, Entry{
			ID:         id,
			Name:       b.Name,
			Shortcut:   b.Shortcut,
			Normalized: shortcut.Normalize(b.Shortcut),
			Active:     active,
		})
	}
	return out
}

// Lookup finds the binding for a normalized shortcut. A binding that holds
// the live registration wins over one skipped as a duplicate.
func (r *Registry) Lookup(normalized string) (string, bindings.Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.active {
		if c.String() == normalized {
			return id, r.bindings[id], true
		}
	}
	for _, id := range r.bindings.IDs() {
		b := r.bindings[id]
		if shortcut.Normalize(b.Shortcut) == normalized {
			return id, b, true
		}
	}
	return "", bindings.Binding{}, false
}

// Update rebinds id to raw. The new combination is registered before the old
// one is released, so a failed update leaves the previous hotkey working.
// A persistence failure is returned wrapped in ErrPersistence after the
// in-memory and OS state have been committed.
func (r *Registry) Update(id, raw string) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	changed, err := r.rebind(id, raw)
	if err != nil || !changed {
		return err
	}
	return r.persist()
}

// rebind performs the registration half of an update and reports whether
// anything changed. opMu must be held.
func (r *Registry) rebind(id, raw string) (bool, error) {
	r.mu.Lock()
	b, ok := r.bindings[id]
	if !ok {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	others := r.normalizedExcept(id)
	r.mu.Unlock()

	oldRaw := b.Shortcut
	oldNorm := shortcut.Normalize(oldRaw)
	newNorm := shortcut.Normalize(raw)
	if oldNorm == newNorm {
		r.log.Debug().Str("id", id).Str("shortcut", raw).Msg("shortcut unchanged")
		return false, nil
	}

	combo, err := shortcut.Parse(raw)
	if err != nil {
		return false, err
	}

	if owner, taken := others[newNorm]; taken {
		return false, fmt.Errorf("%w: %s is used by %s", ErrDuplicateShortcut, raw, owner)
	}

	if err := r.safeRegister(combo); err != nil {
		r.log.Warn().Err(err).Str("id", id).Str("shortcut", raw).Msg("failed to register new shortcut")
		return false, fmt.Errorf("%w: %s: %w", ErrRegistrationFailed, raw, err)
	}
	r.log.Info().Str("id", id).Str("shortcut", raw).Msg("registered shortcut")

	if _, shared := others[oldNorm]; shared {
		r.log.Debug().Str("id", id).Str("shortcut", oldRaw).Msg("old shortcut still bound elsewhere, keeping registration")
	} else {
		r.releaseOld(id, oldRaw)
	}

	r.mu.Lock()
	b.Shortcut = raw
	r.bindings[id] = b
	r.active[id] = combo
	r.mu.Unlock()

	r.log.Info().Str("id", id).Str("from", oldRaw).Str("to", raw).Msg("shortcut updated")
	return true, nil
}

func (r *Registry) persist() error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Save(r.Snapshot()); err != nil {
		r.log.Warn().Err(err).Msg("shortcut change is live but could not be saved")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// releaseOld unregisters the previous combination, trying the stored
// spelling first and then its normalized form. Failures are only logged.
func (r *Registry) releaseOld(id, oldRaw string) {
	var tried []shortcut.Combo
	for _, variant := range []string{oldRaw, shortcut.Normalize(oldRaw)} {
		c, err := shortcut.Parse(variant)
		if err != nil {
			r.log.Debug().Err(err).Str("id", id).Str("shortcut", variant).Msg("could not parse old shortcut")
			continue
		}
		if containsCombo(tried, c) {
			continue
		}
		tried = append(tried, c)

		if err := r.safeUnregister(c); err != nil {
			r.log.Info().Err(err).Str("id", id).Str("shortcut", variant).Msg("could not unregister old shortcut")
			continue
		}
		r.log.Debug().Str("id", id).Str("shortcut", variant).Msg("unregistered old shortcut")
		break
	}

	r.mu.Lock()
	delete(r.active, id)
	r.mu.Unlock()
}

// normalizedExcept maps normalized shortcuts to ids for every binding but
// skip. mu must be held.
func (r *Registry) normalizedExcept(skip string) map[string]string {
	out := make(map[string]string, len(r.bindings))
	for _, id := range r.bindings.IDs() {
		if id == skip {
			continue
		}
		n := shortcut.Normalize(r.bindings[id].Shortcut)
		if _, seen := out[n]; !seen {
			out[n] = id
		}
	}
	return out
}

func (r *Registry) safeRegister(c shortcut.Combo) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Str("shortcut", c.String()).Msg("panic while registering shortcut")
			err = fmt.Errorf("panic while registering %s: %v", c, rec)
		}
	}()
	if r.hotkeys == nil {
		return errors.New("hotkeys unavailable")
	}
	return r.hotkeys.Register(c)
}

func (r *Registry) safeUnregister(c shortcut.Combo) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while unregistering %s: %v", c, rec)
		}
	}()
	if r.hotkeys == nil {
		return errors.New("hotkeys unavailable")
	}
	return r.hotkeys.Unregister(c)
}

func containsCombo(list []shortcut.Combo, c shortcut.Combo) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}
