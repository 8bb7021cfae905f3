package branch

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "branches"

type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityBranch }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "name", "code", "address")
		if !core.MatchesAny(term, fields) {
			continue
		}

		results = append(results, core.SearchResult{
			ID:          doc.ID,
			Type:        core.EntityBranch,
			Title:       core.StringField(doc, "name"),
			Subtitle:    core.StringField(doc, "code"),
			Description: core.StringField(doc, "address"),
			Icon:        "building",
			Route:       "/settings/branches/" + doc.ID,
			Score:       core.Relevance(term, fields),
			Data:        doc.Fields,
		})
	}
	return results, nil
}
