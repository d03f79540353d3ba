package booking

import "sync"

// Store keeps one wizard per session id. Drafts live in memory only and
// disappear on submission success or process restart.
type Store struct {
	mu      sync.Mutex
	wizards map[string]*Wizard
}

func NewStore() *Store {
	return &Store{wizards: make(map[string]*Wizard)}
}

// Get returns the session's wizard, creating a fresh one at StepService
// if none exists.
func (s *Store) Get(sid string) *Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wizards[sid]
	if !ok {
		w = NewWizard()
		s.wizards[sid] = w
	}
	return w
}

// Drop discards the session's draft.
func (s *Store) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wizards, sid)
}
