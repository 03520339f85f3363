// Package store holds the client state (session and known matches), notifies
// subscribers of changes and persists snapshots through a Persister.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/findergoal/internal/model"
)

// StateKey is the key snapshots are persisted under.
const StateKey = "findergoal-store"

// ErrNotFound is returned when a key or match does not exist.
var ErrNotFound = errors.New("not found")

// Persister stores opaque blobs by key.
type Persister interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// Snapshot is an immutable copy of the state.
type Snapshot struct {
	SavedAt time.Time      `json:"savedAt"`
	Session *model.Session `json:"session,omitempty"`
	Matches []model.Match  `json:"matches"`
}

// State is the mutable client state. The zero value is not usable; call New.
type State struct {
	now         func() time.Time
	session     *model.Session
	subscribers map[int]chan Snapshot
	matches     []model.Match
	nextSub     int
	mu          sync.Mutex
}

// New creates an empty state.
func New() *State {
	return &State{
		subscribers: make(map[int]chan Snapshot),
		matches:     []model.Match{},
		now:         time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	snap := Snapshot{Matches: cloneMatches(s.matches)}
	if s.session != nil {
		session := *s.session
		snap.Session = &session
	}
	return snap
}

// Session returns the current session if one is authenticated.
func (s *State) Session() (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || !s.session.Authenticated(s.now()) {
		return model.Session{}, false
	}
	return *s.session, true
}

// Login replaces the session.
func (s *State) Login(session model.Session) {
	s.update(func() { s.session = &session })
}

// Logout clears the session and the matches fetched with it.
func (s *State) Logout() {
	s.update(func() {
		s.session = nil
		s.matches = []model.Match{}
	})
}

// SetMatches replaces the known matches.
func (s *State) SetMatches(matches []model.Match) {
	s.update(func() { s.matches = cloneMatches(matches) })
}

// PutMatch inserts a match or replaces the one with the same ID.
func (s *State) PutMatch(match model.Match) {
	s.update(func() {
		match.Players = append([]string(nil), match.Players...)
		for i := range s.matches {
			if s.matches[i].ID == match.ID {
				s.matches[i] = match
				return
			}
		}
		s.matches = append(s.matches, match)
	})
}

// RemoveMatch deletes the match with the given ID.
func (s *State) RemoveMatch(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.matches {
		if s.matches[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	s.matches = append(s.matches[:idx:idx], s.matches[idx+1:]...)
	s.notifyLocked(s.snapshotLocked())
	s.mu.Unlock()
	return nil
}

// Match returns the match with the given ID.
func (s *State) Match(id string) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.matches {
		if m.ID == id {
			m.Players = append([]string(nil), m.Players...)
			return m, nil
		}
	}
	return model.Match{}, fmt.Errorf("match %s: %w", id, ErrNotFound)
}

// Subscribe returns a channel receiving a snapshot after every change and a
// function that unsubscribes and closes the channel. A slow subscriber only
// sees the latest snapshot.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *State) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn()
	s.notifyLocked(s.snapshotLocked())
}

// notifyLocked delivers snap to every subscriber. It must run under mu, in
// the same critical section as the mutation, so snapshots reach subscribers
// in mutation order. Sends never block.
func (s *State) notifyLocked(snap Snapshot) {
	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// replace the stale snapshot
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Save persists a snapshot of the state under StateKey.
func (s *State) Save(ctx context.Context, p Persister) error {
	s.mu.Lock()
	snap := s.snapshotLocked()
	snap.SavedAt = s.now()
	s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := p.Save(ctx, StateKey, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Load restores the state saved under StateKey. A missing snapshot leaves
// the state empty and is not an error.
func (s *State) Load(ctx context.Context, p Persister) error {
	data, err := p.Load(ctx, StateKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}

	s.update(func() {
		s.session = snap.Session
		s.matches = cloneMatches(snap.Matches)
	})
	return nil
}

func cloneMatches(matches []model.Match) []model.Match {
	out := make([]model.Match, len(matches))
	for i, m := range matches {
		m.Players = append([]string(nil), m.Players...)
		out[i] = m
	}
	return out
}
