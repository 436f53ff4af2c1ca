package transfer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hanactl/internal/logging"
	"hanactl/internal/metrics"
	"hanactl/internal/models"
)

// API is the slice of the agent client the runner needs. Kept narrow so
// tests can substitute a scripted stub.
type API interface {
	ListJobs(ctx context.Context, since, until string, limit int) ([]models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// Runner executes application-level operations against the agent service and
// tracks progress for the dashboard.
type Runner struct {
	api      API
	limiter  *rate.Limiter
	pageSize int

	mu    sync.Mutex
	state models.RunState
}

func NewRunner(api API, deletesPerSecond float64, pageSize int) *Runner {
	if deletesPerSecond <= 0 {
		deletesPerSecond = 2
	}
	if pageSize < 1 {
		pageSize = 100
	}
	return &Runner{
		api:      api,
		limiter:  rate.NewLimiter(rate.Limit(deletesPerSecond), 1),
		pageSize: pageSize,
	}
}

// Purge deletes every job in the window, one at a time, in rounds of up to a
// page each, until a round comes back empty. The limiter paces deletes so
// the service does not throttle us mid-round.
func (r *Runner) Purge(ctx context.Context, since, until string) (int, error) {
	log := logging.Logger()
	deleted := 0
	for {
		jobs, err := r.api.ListJobs(ctx, since, until, r.pageSize)
		if err != nil {
			return deleted, fmt.Errorf("list jobs: %w", err)
		}
		if len(jobs) == 0 {
			break
		}

		log.Printf("Deleting %d job(s) this round", len(jobs))
		for _, j := range jobs {
			if err := r.limiter.Wait(ctx); err != nil {
				return deleted, err
			}
			if err := r.api.DeleteJob(ctx, j.ID); err != nil {
				return deleted, fmt.Errorf("delete job %s: %w", j.ID, err)
			}
			deleted++
			metrics.JobsDeletedTotal.Inc()
			r.trackDeleted()
			logging.Debugf("Deleted job %s (%d this run)", j.ID, deleted)
		}
		log.Printf("Finished a round of deletion, will continue if more jobs remain")
	}
	log.Printf("Purge finished, %d job(s) deleted", deleted)
	return deleted, nil
}

// Fetch pulls one page for the window and saves it to the local work file
// for inspection.
func (r *Runner) Fetch(ctx context.Context, since, until, workPath string) ([]models.Job, error) {
	jobs, err := r.api.ListJobs(ctx, since, until, r.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if err := SaveWorkFile(workPath, jobs); err != nil {
		return nil, fmt.Errorf("save work file: %w", err)
	}
	metrics.JobsFetchedTotal.Add(float64(len(jobs)))
	r.trackFetched(len(jobs))
	logging.Debugf("Saved %d job(s) to %s", len(jobs), workPath)
	return jobs, nil
}

// RunOnce is one round of continuous mode: purge whatever is in the window,
// recording failures instead of stopping the loop.
func (r *Runner) RunOnce(ctx context.Context, since, until string) {
	r.setRunning(true)
	_, err := r.Purge(ctx, since, until)
	now := time.Now()

	r.mu.Lock()
	r.state.RoundCount++
	r.state.LastRound = &now
	if err != nil {
		r.state.ErrorCount++
		msg := err.Error()
		r.state.LastError = &msg
	} else {
		r.state.LastError = nil
	}
	r.mu.Unlock()

	if err != nil {
		logging.Logger().Printf("Round failed: %v", err)
	}
}

func (r *Runner) Stop() { r.setRunning(false) }

func (r *Runner) State() models.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setRunning(v bool) {
	r.mu.Lock()
	r.state.IsRunning = v
	r.mu.Unlock()
}

func (r *Runner) trackDeleted() {
	r.mu.Lock()
	r.state.JobsDeleted++
	r.mu.Unlock()
}

func (r *Runner) trackFetched(n int) {
	r.mu.Lock()
	r.state.JobsFetched += n
	r.mu.Unlock()
}
