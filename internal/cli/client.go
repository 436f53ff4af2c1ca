package cli

import (
	"fmt"
	"net/http"
	"time"

	"hanactl/internal/agent"
	"hanactl/internal/config"
	"hanactl/internal/metrics"
)

// loadClient builds the signed client from the stored enrollment credential.
func loadClient(cfg config.Config) (*agent.Client, error) {
	cred, err := config.LoadCredential(cfg.CredentialFile)
	if err != nil {
		return nil, fmt.Errorf("no usable credential at %s (run `hanactl login` first): %w", cfg.CredentialFile, err)
	}
	secret, err := cred.SecretBytes()
	if err != nil {
		return nil, err
	}

	return agent.NewClient(cfg.AgentURL, agent.Credential{KeyID: cred.KeyID, Secret: secret}, &agent.Settings{
		HTTPClient:  &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second},
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   time.Duration(cfg.RetryBaseMillis) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.RetryMaxMillis) * time.Millisecond,
		OnAttempt:   metrics.RequestObserver(),
	}), nil
}
