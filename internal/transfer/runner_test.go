package transfer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanactl/internal/models"
)

// scriptedAPI serves pre-baked pages in order and records every delete.
type scriptedAPI struct {
	pages   [][]models.Job
	listErr error
	delErr  map[string]error

	listCalls int
	deleted   []string
}

func (s *scriptedAPI) ListJobs(ctx context.Context, since, until string, limit int) ([]models.Job, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	i := s.listCalls
	s.listCalls++
	if i >= len(s.pages) {
		return nil, nil
	}
	return s.pages[i], nil
}

func (s *scriptedAPI) DeleteJob(ctx context.Context, id string) error {
	if err, ok := s.delErr[id]; ok {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func jobs(ids ...string) []models.Job {
	out := make([]models.Job, len(ids))
	for i, id := range ids {
		out[i] = models.Job{ID: id, State: models.JobStateComplete}
	}
	return out
}

func TestPurgeRunsRoundsUntilEmpty(t *testing.T) {
	api := &scriptedAPI{pages: [][]models.Job{jobs("a", "b", "c"), jobs("d", "e")}}
	r := NewRunner(api, 1000, 100)

	n, err := r.Purge(context.Background(), "2024-01-01", "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, api.deleted)
	assert.Equal(t, 3, api.listCalls, "one extra round to observe the empty page")
	assert.Equal(t, 5, r.State().JobsDeleted)
}

func TestPurgeEmptyWindow(t *testing.T) {
	api := &scriptedAPI{}
	r := NewRunner(api, 1000, 100)

	n, err := r.Purge(context.Background(), "", "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, api.deleted)
}

func TestPurgePropagatesListError(t *testing.T) {
	boom := errors.New("list exploded")
	api := &scriptedAPI{listErr: boom}
	r := NewRunner(api, 1000, 100)

	n, err := r.Purge(context.Background(), "", "")
	require.ErrorIs(t, err, boom)
	assert.Zero(t, n)
}

func TestPurgeStopsOnDeleteError(t *testing.T) {
	boom := errors.New("delete exploded")
	api := &scriptedAPI{
		pages:  [][]models.Job{jobs("a", "b", "c")},
		delErr: map[string]error{"b": boom},
	}
	r := NewRunner(api, 1000, 100)

	n, err := r.Purge(context.Background(), "", "")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n, "count reflects completed deletes only")
	assert.Equal(t, []string{"a"}, api.deleted)
}

func TestPurgeHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	api := &scriptedAPI{pages: [][]models.Job{jobs("a")}}
	r := NewRunner(api, 0.001, 100) // limiter would block for minutes

	_, err := r.Purge(ctx, "", "")
	require.Error(t, err)
	assert.Empty(t, api.deleted)
}

func TestFetchWritesWorkFile(t *testing.T) {
	api := &scriptedAPI{pages: [][]models.Job{jobs("a", "b")}}
	r := NewRunner(api, 1000, 100)
	path := filepath.Join(t.TempDir(), "work.json")

	got, err := r.Fetch(context.Background(), "2024-01-01", "", path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	saved, err := LoadWorkFile(path)
	require.NoError(t, err)
	assert.Equal(t, got, saved)
	assert.Equal(t, 2, r.State().JobsFetched)
}

func TestWorkFileRoundTripNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.json")
	require.NoError(t, SaveWorkFile(path, nil))

	saved, err := LoadWorkFile(path)
	require.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Empty(t, saved)
}

func TestRunOnceRecordsOutcome(t *testing.T) {
	api := &scriptedAPI{pages: [][]models.Job{jobs("a")}}
	r := NewRunner(api, 1000, 100)

	r.RunOnce(context.Background(), "", "")
	st := r.State()
	assert.Equal(t, 1, st.RoundCount)
	assert.NotNil(t, st.LastRound)
	assert.Nil(t, st.LastError)
	assert.Zero(t, st.ErrorCount)

	api.listErr = errors.New("window query failed")
	r.RunOnce(context.Background(), "", "")
	st = r.State()
	assert.Equal(t, 2, st.RoundCount)
	assert.Equal(t, 1, st.ErrorCount)
	require.NotNil(t, st.LastError)
	assert.Contains(t, *st.LastError, "window query failed")
}
