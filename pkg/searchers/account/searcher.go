package account

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "accounts"

// Searcher matches ledger accounts on their Arabic and English names and the
// account code.
type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityAccount }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "nameAr", "nameEn", "code")
		if !core.MatchesAny(term, fields) {
			continue
		}

		title := core.StringField(doc, "nameAr")
		if title == "" {
			title = core.StringField(doc, "nameEn")
		}
		results = append(results, core.SearchResult{
			ID:       doc.ID,
			Type:     core.EntityAccount,
			Title:    title,
			Subtitle: core.StringField(doc, "code"),
			Icon:     "book-open",
			Route:    "/accounts/" + doc.ID,
			Score:    core.Relevance(term, fields),
			Data:     doc.Fields,
		})
	}
	return results, nil
}
