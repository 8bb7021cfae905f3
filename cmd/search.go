package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mohamed66886/erp90-search/pkg/search"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search across all entity kinds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query",
			},
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Restrict to specific entity kind(s). Can be used multiple times",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return searchDocuments(ctx, c.String("config"), c.String("query"), c.StringSlice("type"), c.Int("limit"))
		},
	}
}

// QuickCommand creates the quick search command
func QuickCommand() *cli.Command {
	return &cli.Command{
		Name:  "quick",
		Usage: "Lightweight search with a small result cap and no fallback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return quickSearchDocuments(ctx, c.String("config"), c.String("query"), c.Int("limit"))
		},
	}
}

func searchDocuments(ctx context.Context, configPath, query string, typeFilters []string, limit int) error {
	_, _, service, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	types, err := parseTypeFilters(typeFilters)
	if err != nil {
		return fmt.Errorf("parsing type filters: %w", err)
	}

	results := service.Search(ctx, search.Options{
		Query: query,
		Types: types,
		Limit: limit,
	})

	formatResults(results)
	return nil
}

func quickSearchDocuments(ctx context.Context, configPath, query string, limit int) error {
	_, _, service, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	results := service.QuickSearch(ctx, query, limit)
	formatResults(results)
	return nil
}
