package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVersioned struct {
	id      string
	version int64
	value   string
}

func (f *fakeVersioned) GetID() string      { return f.id }
func (f *fakeVersioned) GetVersion() int64  { return f.version }
func (f *fakeVersioned) SetVersion(v int64) { f.version = v }

// fakeStore keeps one row and can be told to lose the next N races.
type fakeStore struct {
	row       fakeVersioned
	loseRaces int
	updates   int
}

func (s *fakeStore) get(_ context.Context, id string) (*fakeVersioned, error) {
	if id != s.row.id {
		return nil, nil
	}
	cp := s.row
	return &cp, nil
}

func (s *fakeStore) update(_ context.Context, e *fakeVersioned, expected int64) (pgconn.CommandTag, error) {
	s.updates++
	if s.loseRaces > 0 {
		s.loseRaces--
		s.row.version++
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	if s.row.version != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	s.row.value = e.value
	s.row.version++
	return pgconn.CommandTag("UPDATE 1"), nil
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	s := &fakeStore{row: fakeVersioned{id: "a", version: 4}}
	err := WithRetry(context.Background(), 3, "a", s.get, s.update, func(e *fakeVersioned) error {
		e.value = "x"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "x", s.row.value)
	assert.Equal(t, int64(5), s.row.version)
	assert.Equal(t, 1, s.updates)
}

func TestWithRetry_RetriesAfterLostRace(t *testing.T) {
	s := &fakeStore{row: fakeVersioned{id: "a", version: 1}, loseRaces: 2}
	err := WithRetry(context.Background(), 3, "a", s.get, s.update, func(e *fakeVersioned) error {
		e.value = "y"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "y", s.row.value)
	assert.Equal(t, 3, s.updates)
	assert.Equal(t, int64(4), s.row.version)
}

func TestWithRetry_GivesUpUnderContention(t *testing.T) {
	s := &fakeStore{row: fakeVersioned{id: "a", version: 1}, loseRaces: 10}
	err := WithRetry(context.Background(), 3, "a", s.get, s.update, func(*fakeVersioned) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too much contention")
	assert.Equal(t, 3, s.updates)
}

func TestWithRetry_MissingRow(t *testing.T) {
	s := &fakeStore{row: fakeVersioned{id: "a", version: 1}}
	err := WithRetry(context.Background(), 3, "missing", s.get, s.update, func(*fakeVersioned) error { return nil })
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Zero(t, s.updates)
}

func TestWithRetry_MutateErrorStops(t *testing.T) {
	s := &fakeStore{row: fakeVersioned{id: "a", version: 1}}
	boom := errors.New("boom")
	err := WithRetry(context.Background(), 3, "a", s.get, s.update, func(*fakeVersioned) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.updates)
}
