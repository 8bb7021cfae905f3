package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v3"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

const importBatchSize = 500

// importRecord is one line of an NDJSON export file.
type importRecord struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Fields    map[string]any `json:"fields"`
}

// ImportCommand creates the import command
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import an NDJSON export file into a collection",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "collection",
				Usage:    "Target collection name",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("file argument is required")
			}
			return importFile(ctx, c.String("config"), c.String("collection"), path)
		},
	}
}

func importFile(ctx context.Context, configPath, collection, path string) error {
	if !knownCollection(collection) {
		return fmt.Errorf("unknown collection %q", collection)
	}

	_, store, _, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return fmt.Errorf("creating zstd reader: %w", err)
		}
		defer decoder.Close()
		reader = decoder
	}

	now := time.Now().UTC()
	imported := 0
	skipped := 0
	batch := make([]core.Document, 0, importBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.PutBatch(ctx, collection, batch); err != nil {
			return fmt.Errorf("storing batch: %w", err)
		}
		imported += len(batch)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec importRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			fmt.Printf("Warning: skipping line %d: %v\n", lineNo, err)
			skipped++
			continue
		}

		doc := core.Document{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			Fields:    rec.Fields,
		}
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = now
		}

		batch = append(batch, doc)
		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := flush(); err != nil {
		return err
	}

	fmt.Printf("Imported %d documents into %s", imported, collection)
	if skipped > 0 {
		fmt.Printf(" (%d lines skipped)", skipped)
	}
	fmt.Println()
	return nil
}

func knownCollection(collection string) bool {
	for _, searcher := range core.GetGlobalRegistry().All() {
		if searcher.Collection() == collection {
			return true
		}
	}
	return false
}
