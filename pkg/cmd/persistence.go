package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campuscycles/gearbox/pkg/persistence"
	"github.com/campuscycles/gearbox/pkg/persistence/memory"
	"github.com/campuscycles/gearbox/pkg/persistence/postgresql"
)

// NewPersistence selects the storage backend from the database URL scheme.
// postgres:// and postgresql:// select PostgreSQL; anything else falls back
// to the in-memory store used for local development.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parsePersistenceProvider(databaseURL) {
	case "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create PostgreSQL persistence: %w", err))
		}

		return p
	default:
		return memory.NewPersistence()
	}
}

func parsePersistenceProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "memory"
	}

	switch scheme {
	case "postgres", "postgresql":
		return "postgresql"
	}

	return "memory"
}
