package transfer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"hanactl/internal/models"
)

// DefaultWorkPath is where fetch drops its snapshot between runs.
func DefaultWorkPath() string {
	return filepath.Join(os.TempDir(), "hanactl.work.json")
}

func SaveWorkFile(path string, jobs []models.Job) error {
	if jobs == nil {
		jobs = []models.Job{}
	}
	b, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func LoadWorkFile(path string) ([]models.Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.Job{}, nil
	}
	var jobs []models.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
