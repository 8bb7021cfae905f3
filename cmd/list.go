package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List documents in a collection, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "collection",
				Usage:    "Collection name to list documents from",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of documents to show",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return listDocuments(ctx, c.String("config"), c.String("collection"), c.Int("limit"))
		},
	}
}

func listDocuments(ctx context.Context, configPath, collection string, limit int) error {
	if !knownCollection(collection) {
		return fmt.Errorf("unknown collection %q", collection)
	}

	_, store, _, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := store.GetRecent(ctx, collection, "created_at", limit)
	if err != nil {
		return fmt.Errorf("listing %s: %w", collection, err)
	}

	if len(docs) == 0 {
		fmt.Printf("No documents in collection '%s'\n", collection)
		return nil
	}

	fmt.Printf("=== %s (%d documents) ===\n\n", collection, len(docs))
	for i, doc := range docs {
		fmt.Printf("%s  %s\n", doc.CreatedAt.Format("2006-01-02 15:04"), doc.ID)
		if formatted := core.FormatFields(doc.Fields); formatted != "" {
			fmt.Println(formatted)
		}
		if i < len(docs)-1 {
			fmt.Println()
		}
	}
	return nil
}
