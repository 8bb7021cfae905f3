package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show document counts per collection",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(ctx, c.String("config"))
		},
	}
}

func showStats(ctx context.Context, configPath string) error {
	_, store, _, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	// Open every registered collection so the counts cover all of them,
	// not just the ones previously touched.
	stats := make(map[string]int)
	for _, searcher := range core.GetGlobalRegistry().All() {
		count, err := store.Count(ctx, searcher.Collection())
		if err != nil {
			return fmt.Errorf("counting %s: %w", searcher.Collection(), err)
		}
		stats[searcher.Collection()] = count
	}

	formatStats(stats)
	return nil
}
