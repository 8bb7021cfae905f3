package warehouse

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "warehouses"

type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityWarehouse }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "name", "code")
		if !core.MatchesAny(term, fields) {
			continue
		}

		results = append(results, core.SearchResult{
			ID:       doc.ID,
			Type:     core.EntityWarehouse,
			Title:    core.StringField(doc, "name"),
			Subtitle: core.StringField(doc, "code"),
			Icon:     "archive",
			Route:    "/inventory/warehouses/" + doc.ID,
			Score:    core.Relevance(term, fields),
			Data:     doc.Fields,
		})
	}
	return results, nil
}
