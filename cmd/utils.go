package cmd

import (
	"fmt"
	"os"

	"github.com/mohamed66886/erp90-search/pkg/config"
	"github.com/mohamed66886/erp90-search/pkg/core"
	"github.com/mohamed66886/erp90-search/pkg/docstore"
	"github.com/mohamed66886/erp90-search/pkg/search"
)

// openServices loads the config and wires the storage manager, registry and
// search service the way every command needs them. The returned cleanup
// closes the storage manager.
func openServices(configPath string) (*config.Config, *docstore.Manager, *search.Service, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("creating storage directory: %w", err)
	}

	store := docstore.NewManager(cfg.StorageDir)
	cleanup := func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close storage manager: %v\n", err)
		}
	}

	service := search.NewService(store, core.GetGlobalRegistry(), search.Config{
		CacheTTL:     cfg.CacheTTL.Duration,
		DefaultLimit: cfg.DefaultLimit,
		QuickLimit:   cfg.QuickLimit,
	})

	return cfg, store, service, cleanup, nil
}

// parseTypeFilters converts --type flag values to entity kinds.
func parseTypeFilters(raw []string) ([]core.EntityType, error) {
	types := make([]core.EntityType, 0, len(raw))
	for _, value := range raw {
		t, err := core.ParseEntityType(value)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
