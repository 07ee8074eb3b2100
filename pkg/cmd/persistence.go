// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flowhr/flowhr/pkg/persistence"
	"github.com/flowhr/flowhr/pkg/persistence/file"
	"github.com/flowhr/flowhr/pkg/persistence/memory"
	"github.com/flowhr/flowhr/pkg/persistence/redis"
)

// NewPersistence builds a workflow store from a database URL. The scheme
// selects the backend: redis:// connects to Redis, memory:// holds workflows
// in process, anything else is treated as a filesystem root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Store, error) {
	switch parsePersistenceProvider(databaseURL) {
	case "redis":
		logger.Info("Using redis persistence", "url", databaseURL)

		return redis.NewStore(ctx, databaseURL)
	case "memory":
		logger.Info("Using in-memory persistence")

		return memory.NewStore(), nil
	default:
		logger.Info("Using file persistence", "root", databaseURL)

		return file.NewStore(databaseURL), nil
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return provider
}
