package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/findergoal/internal/model"
)

func testMatch(id string, players ...string) model.Match {
	return model.Match{
		ID:         id,
		Date:       "2025-03-15",
		Time:       "20:00",
		Location:   "Cancha El Lago",
		Format:     "7v7",
		Currency:   "COP",
		Status:     model.MatchOpen,
		Players:    players,
		Price:      15000,
		MaxPlayers: 14,
	}
}

func TestState_Session(t *testing.T) {
	s := New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, ok := s.Session()
	assert.False(t, ok)

	s.Login(model.Session{Token: "tok", ExpiresAt: now.Add(time.Hour), User: model.User{Name: "Ana"}})
	session, ok := s.Session()
	require.True(t, ok)
	assert.Equal(t, "Ana", session.User.Name)

	now = now.Add(2 * time.Hour)
	_, ok = s.Session()
	assert.False(t, ok, "expired sessions are not returned")

	s.SetMatches([]model.Match{testMatch("m1")})
	s.Logout()
	snap := s.Snapshot()
	assert.Nil(t, snap.Session)
	assert.Empty(t, snap.Matches)
}

func TestState_Matches(t *testing.T) {
	s := New()
	s.PutMatch(testMatch("m1", "Ana"))
	s.PutMatch(testMatch("m2"))

	updated := testMatch("m1", "Ana", "Luis")
	s.PutMatch(updated)

	snap := s.Snapshot()
	require.Len(t, snap.Matches, 2)
	assert.Equal(t, []string{"Ana", "Luis"}, snap.Matches[0].Players)

	got, err := s.Match("m2")
	require.NoError(t, err)
	assert.Equal(t, "m2", got.ID)

	require.NoError(t, s.RemoveMatch("m1"))
	assert.ErrorIs(t, s.RemoveMatch("m1"), ErrNotFound)
	_, err = s.Match("m1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.Snapshot().Matches, 1)
}

func TestState_SnapshotIsIsolated(t *testing.T) {
	s := New()
	players := []string{"Ana"}
	s.SetMatches([]model.Match{testMatch("m1", players...)})

	snap := s.Snapshot()
	snap.Matches[0].Players[0] = "changed"
	players[0] = "changed too"

	got, err := s.Match("m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, got.Players)
}

func TestState_Subscribe(t *testing.T) {
	s := New()
	updates, cancel := s.Subscribe()

	s.PutMatch(testMatch("m1"))
	snap := <-updates
	assert.Len(t, snap.Matches, 1)

	// only the latest snapshot is kept for a subscriber that falls behind
	s.PutMatch(testMatch("m2"))
	s.PutMatch(testMatch("m3"))
	snap = <-updates
	assert.Len(t, snap.Matches, 3)

	cancel()
	cancel()
	_, open := <-updates
	assert.False(t, open)

	s.PutMatch(testMatch("m4"))
}

type memoryPersister map[string][]byte

func (m memoryPersister) Save(_ context.Context, key string, data []byte) error {
	m[key] = data
	return nil
}

func (m memoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func TestState_SubscribeConcurrentWritersEndOnLatest(t *testing.T) {
	s := New()
	ch, cancel := s.Subscribe()
	defer cancel()

	const writers, rounds = 16, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				s.SetMatches([]model.Match{testMatch(fmt.Sprintf("w%d-r%d", w, r))})
				if r%10 == 0 {
					_ = s.RemoveMatch(fmt.Sprintf("w%d-r%d", w, r))
				}
			}
		}()
	}
	wg.Wait()

	var last Snapshot
	select {
	case last = <-ch:
	default:
		t.Fatal("expected a pending snapshot")
	}
	select {
	case extra := <-ch:
		t.Fatalf("expected a single buffered snapshot, got another: %+v", extra)
	default:
	}

	assert.Equal(t, s.Snapshot().Matches, last.Matches, "subscriber must end on the final state")
}

func TestState_SaveLoad(t *testing.T) {
	ctx := context.Background()
	p := memoryPersister{}

	s := New()
	s.Login(model.Session{Token: "tok", User: model.User{ID: "u1", Role: model.RoleAdmin}})
	s.SetMatches([]model.Match{testMatch("m1", "Ana", "Luis")})
	require.NoError(t, s.Save(ctx, p))
	assert.Contains(t, p, StateKey)

	restored := New()
	require.NoError(t, restored.Load(ctx, p))

	session, ok := restored.Session()
	require.True(t, ok)
	assert.True(t, session.IsAdmin())
	assert.Equal(t, s.Snapshot().Matches, restored.Snapshot().Matches)
}

func TestState_LoadMissingIsEmpty(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(context.Background(), memoryPersister{}))
	assert.Empty(t, s.Snapshot().Matches)
}

func TestState_LoadCorrupt(t *testing.T) {
	s := New()
	err := s.Load(context.Background(), memoryPersister{StateKey: []byte("{not json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode state")
}
