package hyper

import (
	"fmt"
	"sync/atomic"
)

// Store publishes hyperparameter snapshots to concurrent readers. Readers
// take one pointer per analysis and never see a half-applied update; the
// optimizer swaps whole validated sets, it never edits in place.
type Store struct {
	cur atomic.Pointer[Hyperparameters]
}

// NewStore creates a store seeded with hp. Invalid seeds fall back to
// Defaults so a store is always readable.
func NewStore(hp Hyperparameters) *Store {
	s := &Store{}
	if err := hp.Validate(); err != nil {
		def := Defaults()
		s.cur.Store(&def)
		return s
	}
	s.cur.Store(&hp)
	return s
}

// Snapshot returns the current set. The returned pointer is shared;
// callers read it, they never write through it.
func (s *Store) Snapshot() *Hyperparameters {
	return s.cur.Load()
}

// Swap validates and publishes a complete replacement set.
func (s *Store) Swap(hp Hyperparameters) error {
	if err := hp.Validate(); err != nil {
		return err
	}
	s.cur.Store(&hp)
	return nil
}

// Apply publishes a partial update: each entry addresses one tunable by
// dotted path ("weights.harassment"). The update is all-or-nothing; an
// unknown path or out-of-range value leaves the current set untouched.
func (s *Store) Apply(partial map[string]float64) error {
	if len(partial) == 0 {
		return nil
	}

	next := *s.cur.Load()
	for path, v := range partial {
		f, ok := fields[path]
		if !ok {
			return fmt.Errorf("unknown hyperparameter path %q", path)
		}
		if v < f.min || v > f.max {
			return fmt.Errorf("hyperparameter %s = %g outside [%g, %g]", path, v, f.min, f.max)
		}
		f.set(&next, v)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	s.cur.Store(&next)
	return nil
}

// Get returns one tunable's current value by dotted path.
func (s *Store) Get(path string) (float64, error) {
	f, ok := fields[path]
	if !ok {
		return 0, fmt.Errorf("unknown hyperparameter path %q", path)
	}
	return f.get(s.cur.Load()), nil
}
