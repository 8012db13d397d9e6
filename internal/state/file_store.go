package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore implements Store on the local filesystem, mainly for dry runs
// and tests. Keys mirror the S3 layout.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) SavePlan(_ context.Context, app string, plan *Plan) error {
	if err := ValidatePlan(plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	data, err := marshalPlan(plan)
	if err != nil {
		return err
	}
	if err := s.write(currentKey(app), data); err != nil {
		return fmt.Errorf("failed to save current plan: %w", err)
	}
	if err := s.write(versionKey(app, plan.Metadata.Version), data); err != nil {
		return fmt.Errorf("failed to save plan version %s: %w", plan.Metadata.Version, err)
	}
	return nil
}

func (s *FileStore) GetPlan(_ context.Context, app string) (*Plan, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, currentKey(app)))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan for %s: %w", app, err)
	}
	return unmarshalPlan(data)
}

func (s *FileStore) GetPlanVersion(_ context.Context, app, version string) (*Plan, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, versionKey(app, version)))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan version %s for %s: %w", version, app, err)
	}
	return unmarshalPlan(data)
}

func (s *FileStore) DeletePlan(_ context.Context, app string) error {
	if err := os.Remove(filepath.Join(s.dir, currentKey(app))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete plan for %s: %w", app, err)
	}
	return nil
}

func (s *FileStore) write(key string, data []byte) error {
	path := filepath.Join(s.dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
