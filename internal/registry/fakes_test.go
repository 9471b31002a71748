package registry

import (
	"errors"

	"github.com/1broseidon/galaxy/internal/bindings"
	"github.com/1broseidon/galaxy/internal/shortcut"
)

type fakeHotkeys struct {
	live         map[string]bool
	registered   []string
	unregistered []string
	failOn       map[string]error
	panicOn      map[string]bool
}

func newFakeHotkeys() *fakeHotkeys {
	return &fakeHotkeys{
		live:    make(map[string]bool),
		failOn:  make(map[string]error),
		panicOn: make(map[string]bool),
	}
}

func (f *fakeHotkeys) Register(c shortcut.Combo) error {
	key := c.String()
	f.registered = append(f.registered, key)
	if f.panicOn[key] {
		panic("grab exploded")
	}
	if err := f.failOn[key]; err != nil {
		return err
	}
	if f.live[key] {
		return errors.New("already grabbed")
	}
	f.live[key] = true
	return nil
}

func (f *fakeHotkeys) Unregister(c shortcut.Combo) error {
	key := c.String()
	f.unregistered = append(f.unregistered, key)
	if !f.live[key] {
		return errors.New("not grabbed")
	}
	delete(f.live, key)
	return nil
}

type fakeStore struct {
	set     bindings.Set
	saves   int
	saveErr error
	readErr error
}

func (s *fakeStore) Read() (bindings.Set, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.set.Clone(), nil
}

func (s *fakeStore) Save(set bindings.Set) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.set = set.Clone()
	return nil
}
