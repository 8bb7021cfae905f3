package supplier

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "suppliers"

type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntitySupplier }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "name", "phone", "email", "taxNumber")
		if !core.MatchesAny(term, fields) {
			continue
		}

		results = append(results, core.SearchResult{
			ID:          doc.ID,
			Type:        core.EntitySupplier,
			Title:       core.StringField(doc, "name"),
			Subtitle:    core.StringField(doc, "phone"),
			Description: core.StringField(doc, "email"),
			Icon:        "truck",
			Route:       "/purchases/suppliers/" + doc.ID,
			Score:       core.Relevance(term, fields),
			Data:        doc.Fields,
		})
	}
	return results, nil
}
