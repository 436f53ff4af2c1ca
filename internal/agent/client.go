package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hanactl/internal/models"
)

// Credential is the shared-secret identity issued at enrollment. Immutable
// for the process lifetime. The secret must never be logged, printed or
// serialized into a response.
type Credential struct {
	KeyID  string
	Secret []byte
}

// Settings tunes the client; zero/nil fields fall back to defaults. The
// HTTPClient and Tokens seams exist so tests can substitute a recording
// transport and a deterministic nonce sequence.
type Settings struct {
	HTTPClient  *http.Client
	Tokens      TokenSource
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	OnAttempt   func(err error)
}

// Client is the caller-facing surface: typed operations over the signed
// dispatch and retry pipeline.
type Client struct {
	cred Credential
	ctrl *Controller
}

func NewClient(base string, cred Credential, st *Settings) *Client {
	if st == nil {
		st = &Settings{}
	}
	var hc httpClient
	if st.HTTPClient != nil {
		hc = st.HTTPClient
	}
	d := NewDispatcher(base, hc, st.Tokens)
	ctrl := NewController(d.Dispatch, st.MaxAttempts, st.BaseDelay, st.MaxDelay)
	if st.OnAttempt != nil {
		ctrl.OnAttempt(st.OnAttempt)
	}
	return &Client{cred: cred, ctrl: ctrl}
}

// Call sends one logical request through the retry controller. body, when
// non-nil, is marshaled to JSON; the returned payload is the parsed response
// body (nil for bodiless responses).
func (c *Client) Call(ctx context.Context, method, path string, body any) (any, error) {
	if len(c.cred.Secret) == 0 {
		return nil, ErrNoCredential
	}
	var raw []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		raw = b
	}
	out, err := c.ctrl.Do(ctx, c.cred, method, path, raw)
	if err != nil {
		return nil, err
	}
	return out.Payload, nil
}

// Ping checks liveness over the signed channel and returns the server clock.
func (c *Client) Ping(ctx context.Context) (int64, error) {
	payload, err := c.Call(ctx, http.MethodGet, EndpointPing, nil)
	if err != nil {
		return 0, err
	}
	var env struct {
		Data struct {
			Time int64 `json:"time"`
		} `json:"data"`
	}
	if err := decodeInto(payload, &env); err != nil {
		return 0, fmt.Errorf("unexpected ping response: %w", err)
	}
	return env.Data.Time, nil
}

// ListJobs returns one page of transfer jobs, newest first. since and until
// are YYYY-MM-DD dates; they are widened to day-boundary instants before
// being sent.
func (c *Client) ListJobs(ctx context.Context, since, until string, limit int) ([]models.Job, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", int64ToString(int64(limit)))
	}
	if since != "" {
		q.Set("since", expandDate(since))
	}
	if until != "" {
		q.Set("until", expandDate(until))
	}
	path := EndpointJobs
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	payload, err := c.Call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var page models.JobPage
	if err := decodeInto(payload, &page); err != nil {
		return nil, fmt.Errorf("unexpected jobs response: %w", err)
	}
	return page.Data, nil
}

func (c *Client) CreateJob(ctx context.Context, spec models.JobSpec) (models.Job, error) {
	payload, err := c.Call(ctx, http.MethodPost, EndpointJobs, spec)
	if err != nil {
		return models.Job{}, err
	}
	var env struct {
		Data models.Job `json:"data"`
	}
	if err := decodeInto(payload, &env); err != nil {
		return models.Job{}, fmt.Errorf("unexpected create job response: %w", err)
	}
	return env.Data, nil
}

// DeleteJob removes a single job. The service deletes one at a time; batch
// deletion is an application-level loop, not a wire operation.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.Call(ctx, http.MethodDelete, EndpointJobPrefix+id, nil)
	return err
}

// expandDate widens a plain YYYY-MM-DD date to its midnight UTC instant and
// passes anything else through untouched.
func expandDate(s string) string {
	if len(s) == len("2006-01-02") {
		return s + "T00:00:00Z"
	}
	return s
}

func decodeInto(payload, v any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
