package search

import (
	"fmt"
	"strconv"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// ParseOptions parses HTTP query parameters into search Options.
//
// Supported parameters:
//   - q: the search query
//   - type: entity kind filter (can be specified multiple times)
//   - limit: maximum results (positive integer)
//
// Unknown entity kinds are an error so the API can reject them; missing or
// non-positive limits fall back to the service default.
func ParseOptions(queryParams map[string][]string) (Options, error) {
	var opts Options

	if q := queryParams["q"]; len(q) > 0 {
		opts.Query = q[0]
	}

	for _, raw := range queryParams["type"] {
		t, err := core.ParseEntityType(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid type filter: %w", err)
		}
		opts.Types = append(opts.Types, t)
	}

	if limitStr := queryParams["limit"]; len(limitStr) > 0 && limitStr[0] != "" {
		if parsed, err := strconv.Atoi(limitStr[0]); err == nil && parsed > 0 {
			opts.Limit = parsed
		}
	}

	return opts, nil
}
