package enroll

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hanactl/internal/agent"
)

// Client is the unsigned bootstrap client used exactly once per install.
// Requests here carry the operator's bearer token instead of the HMAC
// headers, because the signing credential does not exist yet.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Enrollment is the credential the service issues to a newly registered
// agent. The secret arrives base64-encoded and is decoded here once.
type Enrollment struct {
	AgentID string
	KeyID   string
	Secret  []byte
}

func (c *Client) Enroll(ctx context.Context, agentName string) (Enrollment, error) {
	if c.Token == "" {
		return Enrollment{}, fmt.Errorf("enrollment requires HANA_API_TOKEN to be set")
	}

	body, err := json.Marshal(map[string]string{"name": agentName})
	if err != nil {
		return Enrollment{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+agent.EndpointEnroll, bytes.NewReader(body))
	if err != nil {
		return Enrollment{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Enrollment{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Enrollment{}, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Enrollment{}, fmt.Errorf("enrollment rejected: status=%d body=%s", resp.StatusCode, string(b))
	}

	var env struct {
		Data struct {
			AgentID string `json:"agent_id"`
			KeyID   string `json:"key_id"`
			Secret  string `json:"secret"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return Enrollment{}, fmt.Errorf("unexpected enrollment response: %w", err)
	}
	if env.Data.KeyID == "" || env.Data.Secret == "" {
		return Enrollment{}, fmt.Errorf("enrollment response is missing key_id or secret")
	}
	secret, err := base64.StdEncoding.DecodeString(env.Data.Secret)
	if err != nil {
		return Enrollment{}, fmt.Errorf("enrollment secret is not valid base64: %w", err)
	}

	return Enrollment{AgentID: env.Data.AgentID, KeyID: env.Data.KeyID, Secret: secret}, nil
}
