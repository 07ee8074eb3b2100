// Package memory provides an in-memory persistence implementation, used as
// the default for tests and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/persistence"
)

// Store keeps workflows in a process-local map.
type Store struct {
	mu        sync.RWMutex
	workflows map[string]*models.Workflow
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		workflows: make(map[string]*models.Workflow),
	}
}

var _ persistence.Store = (*Store)(nil)

func (s *Store) Get(_ context.Context, id string) (*models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workflow, ok := s.workflows[id]
	if !ok {
		return nil, nil
	}

	clone := *workflow

	return &clone, nil
}

func (s *Store) Set(_ context.Context, workflow *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *workflow
	s.workflows[workflow.ID] = &clone

	return nil
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.workflows[id]
	delete(s.workflows, id)

	return ok, nil
}

func (s *Store) List(_ context.Context) ([]*models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workflows := make([]*models.Workflow, 0, len(s.workflows))

	for _, workflow := range s.workflows {
		clone := *workflow
		workflows = append(workflows, &clone)
	}

	return workflows, nil
}

func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}
