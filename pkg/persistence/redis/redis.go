// Package redis provides Redis-backed persistence for workflows, keyed by
// workflow id under a common prefix.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/persistence"
)

const keyPrefix = "workflow:"

// Store implements persistence.Store on a Redis instance.
type Store struct {
	client *redis.Client
}

// NewStore connects to the Redis instance described by the URL
// (redis://host:port/db) and verifies the connection.
func NewStore(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

var _ persistence.Store = (*Store)(nil)

func key(id string) string {
	return keyPrefix + id
}

func (s *Store) Get(ctx context.Context, id string) (*models.Workflow, error) {
	body, err := s.client.Get(ctx, key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get workflow %s: %w", id, err)
	}

	var workflow models.Workflow

	if err := json.Unmarshal([]byte(body), &workflow); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow %s: %w", id, err)
	}

	return &workflow, nil
}

func (s *Store) Set(ctx context.Context, workflow *models.Workflow) error {
	body, err := json.Marshal(workflow)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow %s: %w", workflow.ID, err)
	}

	if err := s.client.Set(ctx, key(workflow.ID), body, 0).Err(); err != nil {
		return fmt.Errorf("failed to set workflow %s: %w", workflow.ID, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	return removed > 0, nil
}

func (s *Store) List(ctx context.Context) ([]*models.Workflow, error) {
	workflows := make([]*models.Workflow, 0)

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		body, err := s.client.Get(ctx, iter.Val()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}

			return nil, fmt.Errorf("failed to get workflow %s: %w", iter.Val(), err)
		}

		var workflow models.Workflow

		if err := json.Unmarshal([]byte(body), &workflow); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workflow %s: %w", iter.Val(), err)
		}

		workflows = append(workflows, &workflow)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan workflows: %w", err)
	}

	return workflows, nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close(_ context.Context) error {
	return s.client.Close()
}
