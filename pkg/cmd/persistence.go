package cmd

import (
	"fmt"
	"strings"

	"github.com/toolweave/toolweave/pkg/persistence"
	"github.com/toolweave/toolweave/pkg/persistence/file"
	"github.com/toolweave/toolweave/pkg/persistence/redis"
)

// NewGraphStore builds the store named by the URL scheme: redis:// for the
// Redis store, anything else (including file:// and plain paths) for the
// file store.
func NewGraphStore(databaseURL string) persistence.GraphStore {
	switch parseStoreProvider(databaseURL) {
	case "redis":
		store, err := redis.NewStore(databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create redis store: %w", err))
		}

		return store
	default:
		return file.NewStore(databaseURL)
	}
}

func parseStoreProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return provider
}
