package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// BarcodeCommand creates the barcode lookup command
func BarcodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "barcode",
		Usage:     "Look up inventory items by exact barcode",
		ArgsUsage: "<barcode>",
		Action: func(ctx context.Context, c *cli.Command) error {
			barcode := c.Args().First()
			if barcode == "" {
				return fmt.Errorf("barcode argument is required")
			}
			return lookupBarcode(ctx, c.String("config"), barcode)
		},
	}
}

func lookupBarcode(ctx context.Context, configPath, barcode string) error {
	_, _, service, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	results := service.SearchByBarcode(ctx, barcode)
	if len(results) == 0 {
		fmt.Printf("No item with barcode %s\n", barcode)
		return nil
	}
	formatResults(results)
	return nil
}
