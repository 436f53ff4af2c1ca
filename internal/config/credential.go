package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credential is the enrollment result persisted between runs. The secret is
// stored base64-encoded; the file itself is written owner-only.
type Credential struct {
	AgentID string `json:"agent_id"`
	KeyID   string `json:"key_id"`
	Secret  string `json:"secret"`
}

func (c Credential) SecretBytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(c.Secret)
	if err != nil {
		return nil, fmt.Errorf("credential secret is not valid base64: %w", err)
	}
	return b, nil
}

// DefaultCredentialPath assumes write permission in the home directory and
// falls back to the working directory when home cannot be resolved.
func DefaultCredentialPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hanactl.json"
	}
	return filepath.Join(home, ".hanactl.json")
}

func LoadCredential(path string) (Credential, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credential{}, err
	}
	var c Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return Credential{}, fmt.Errorf("parse credential file %s: %w", path, err)
	}
	if c.KeyID == "" || c.Secret == "" {
		return Credential{}, fmt.Errorf("credential file %s is missing key_id or secret", path)
	}
	return c, nil
}

func SaveCredential(path string, c Credential) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
