package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// formatNumber formats a number with K/M suffixes for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// formatResults prints a ranked result list grouped the way the aggregator
// already sorted it.
func formatResults(results []core.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results found")
		return
	}

	for i, result := range results {
		fmt.Printf("%d. [%s] %s", i+1, result.Type, result.Title)
		if result.Score > 0 {
			fmt.Printf(" (score %d)", result.Score)
		}
		fmt.Println()
		if result.Subtitle != "" {
			fmt.Printf("   %s\n", result.Subtitle)
		}
		if result.Description != "" {
			fmt.Printf("   %s\n", result.Description)
		}
		fmt.Printf("   %s\n", result.Route)
		if i < len(results)-1 {
			fmt.Println()
		}
	}
	fmt.Printf("\nTotal: %d results\n", len(results))
}

// formatStats prints per-collection document counts.
func formatStats(stats map[string]int) {
	fmt.Printf("Storage Statistics\n")
	fmt.Printf("%s\n\n", strings.Repeat("=", 22))

	total := 0
	var collections []string
	for name, count := range stats {
		total += count
		collections = append(collections, name)
	}
	sort.Strings(collections)

	fmt.Printf("Total documents: %s\n", formatNumber(total))
	fmt.Printf("Collections: %d\n\n", len(collections))

	if len(collections) == 0 {
		fmt.Println("No collections stored yet.")
		return
	}

	for _, name := range collections {
		count := stats[name]
		fmt.Printf("  %-20s %s", name, formatNumber(count))
		if total > 0 {
			fmt.Printf(" (%.1f%%)", float64(count)/float64(total)*100)
		}
		fmt.Println()
	}
}
