package hotkeys

import (
	"fmt"
	"sync"

	"github.com/1broseidon/galaxy/internal/shortcut"
	"github.com/1broseidon/galaxy/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/rs/zerolog"
)

// Grabber owns the global key grabs on the X11 root window and reports
// every press and release on a buffered channel.
type Grabber struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	log    zerolog.Logger
	events chan shortcut.Event

	mu     sync.Mutex
	active map[string]grab
}

type grab struct {
	combo shortcut.Combo
	seq   string
}

var ignoreModsOnce sync.Once

// NewGrabber creates a grabber on conn with an event queue of the given size.
func NewGrabber(conn *x11.Connection, queue int, log zerolog.Logger) *Grabber {
	if queue < 1 {
		queue = 1
	}
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})
	return &Grabber{
		xu:     conn.XUtil,
		root:   conn.Root,
		log:    log,
		events: make(chan shortcut.Event, queue),
		active: make(map[string]grab),
	}
}

// Events returns the channel hotkey events are delivered on.
func (g *Grabber) Events() <-chan shortcut.Event {
	return g.events
}

// Register grabs c on the root window. Registering an already grabbed
// combination is a no-op.
func (g *Grabber) Register(c shortcut.Combo) error {
	seq, err := KeySequence(c)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	key := c.String()
	if _, ok := g.active[key]; ok {
		return nil
	}
	if err := g.connect(c, seq); err != nil {
		return fmt.Errorf("grab %s: %w", seq, err)
	}
	g.active[key] = grab{combo: c, seq: seq}
	g.log.Debug().Str("shortcut", key).Str("keys", seq).Msg("hotkey grabbed")
	return nil
}

// Unregister releases the grab for c.
func (g *Grabber) Unregister(c shortcut.Combo) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := c.String()
	gr, ok := g.active[key]
	if !ok {
		return fmt.Errorf("%s is not registered", key)
	}

	mods, codes, err := keybind.ParseString(g.xu, gr.seq)
	if err != nil {
		return fmt.Errorf("ungrab %s: %w", gr.seq, err)
	}
	for _, code := range codes {
		keybind.Ungrab(g.xu, g.root, mods, code)
	}
	delete(g.active, key)

	// keybind detaches callbacks per window only; rebuild the survivors.
	keybind.Detach(g.xu, g.root)
	for k, other := range g.active {
		if err := g.connect(other.combo, other.seq); err != nil {
			g.log.Warn().Err(err).Str("shortcut", k).Msg("failed to restore hotkey grab")
		}
	}
	g.log.Debug().Str("shortcut", key).Msg("hotkey released")
	return nil
}

// UnregisterAll releases every grab.
func (g *Grabber) UnregisterAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	keybind.Detach(g.xu, g.root)
	for _, gr := range g.active {
		if mods, codes, err := keybind.ParseString(g.xu, gr.seq); err == nil {
			for _, code := range codes {
				keybind.Ungrab(g.xu, g.root, mods, code)
			}
		}
	}
	clear(g.active)
}

func (g *Grabber) connect(c shortcut.Combo, seq string) error {
	err := keybind.KeyPressFun(func(*xgbutil.XUtil, xevent.KeyPressEvent) {
		g.emit(shortcut.Event{Shortcut: c, State: shortcut.Pressed})
	}).Connect(g.xu, g.root, seq, true)
	if err != nil {
		return err
	}
	return keybind.KeyReleaseFun(func(*xgbutil.XUtil, xevent.KeyReleaseEvent) {
		g.emit(shortcut.Event{Shortcut: c, State: shortcut.Released})
	}).Connect(g.xu, g.root, seq, false)
}

// emit never blocks the X event loop; events are dropped when the queue is full.
func (g *Grabber) emit(ev shortcut.Event) {
	select {
	case g.events <- ev:
	default:
		g.log.Warn().Str("shortcut", ev.Shortcut.String()).Stringer("state", ev.State).Msg("hotkey queue full, event dropped")
	}
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}
	xevent.IgnoreMods = ignoreMasks(base)
}

// ignoreMasks returns 0 plus every non-empty combination of base.
func ignoreMasks(base []uint16) []uint16 {
	out := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
