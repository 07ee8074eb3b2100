// Package file provides file-based persistence, one JSON document per
// workflow under the configured root directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/persistence"
)

// Store implements persistence.Store on the file system.
type Store struct {
	root string
}

// NewStore creates a file store rooted at the given directory. A
// "file://" prefix on the path is accepted and stripped.
func NewStore(root string) *Store {
	return &Store{root: strings.Replace(root, "file://", "", 1)}
}

var _ persistence.Store = (*Store)(nil)

func (s *Store) workflowsDir() string {
	return path.Join(s.root, "workflows")
}

func (s *Store) workflowPath(id string) string {
	return filepath.Clean(path.Join(s.workflowsDir(), id+".json"))
}

func (s *Store) Get(_ context.Context, id string) (*models.Workflow, error) {
	body, err := os.ReadFile(s.workflowPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read workflow %s: %w", id, err)
	}

	var workflow models.Workflow

	err = json.Unmarshal(body, &workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow %s: %w", id, err)
	}

	return &workflow, nil
}

func (s *Store) Set(_ context.Context, workflow *models.Workflow) error {
	err := os.MkdirAll(s.workflowsDir(), 0750)
	if err != nil {
		return fmt.Errorf("failed to create workflows directory: %w", err)
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workflow %s: %w", workflow.ID, err)
	}

	return os.WriteFile(s.workflowPath(workflow.ID), data, 0600)
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	err := os.Remove(s.workflowPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	return true, nil
}

func (s *Store) List(ctx context.Context) ([]*models.Workflow, error) {
	root := os.DirFS(s.workflowsDir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow files: %w", err)
	}

	workflows := make([]*models.Workflow, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := strings.TrimSuffix(file, ".json")

		workflow, err := s.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow %s: %w", id, err)
		}

		if workflow != nil {
			workflows = append(workflows, workflow)
		}
	}

	return workflows, nil
}

func (s *Store) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}
