package delegate

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "delegates"

// Searcher matches sales representatives on name and contact fields.
type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityDelegate }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "name", "phone", "email")
		if !core.MatchesAny(term, fields) {
			continue
		}

		results = append(results, core.SearchResult{
			ID:          doc.ID,
			Type:        core.EntityDelegate,
			Title:       core.StringField(doc, "name"),
			Subtitle:    core.StringField(doc, "phone"),
			Description: "مندوب مبيعات",
			Icon:        "user-check",
			Route:       "/sales/delegates/" + doc.ID,
			Score:       core.Relevance(term, fields),
			Data:        doc.Fields,
		})
	}
	return results, nil
}
