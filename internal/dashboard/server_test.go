package dashboard

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanactl/internal/config"
	"hanactl/internal/models"
	"hanactl/internal/transfer"
)

type noopAPI struct{}

func (noopAPI) ListJobs(ctx context.Context, since, until string, limit int) ([]models.Job, error) {
	return nil, nil
}
func (noopAPI) DeleteJob(ctx context.Context, id string) error { return nil }

func TestHandleHealth(t *testing.T) {
	s := New(config.Config{}, transfer.NewRunner(noopAPI{}, 1, 1))

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestHandleStatusReflectsRunState(t *testing.T) {
	r := transfer.NewRunner(noopAPI{}, 1000, 10)
	r.RunOnce(context.Background(), "", "")
	s := New(config.Config{RunIntervalSeconds: 300}, r)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest("GET", "/api/status", nil))
	assert.Equal(t, 200, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["round_count"])
	assert.Equal(t, float64(300), body["run_interval_seconds"])
	assert.Nil(t, body["last_error"])
	assert.NotNil(t, body["last_round"])
}
