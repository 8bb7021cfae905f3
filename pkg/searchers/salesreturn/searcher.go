package salesreturn

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "sales_returns"

// Searcher matches sales returns on the return number and the customer the
// return was issued for.
type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityReturn }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "returnNumber", "customerName")
		if !core.MatchesAny(term, fields) {
			continue
		}

		results = append(results, core.SearchResult{
			ID:       doc.ID,
			Type:     core.EntityReturn,
			Title:    "مرتجع " + core.StringField(doc, "returnNumber"),
			Subtitle: core.StringField(doc, "customerName"),
			Icon:     "rotate-ccw",
			Route:    "/sales/returns/" + doc.ID,
			Score:    core.Relevance(term, fields),
			Data:     doc.Fields,
		})
	}
	return results, nil
}
