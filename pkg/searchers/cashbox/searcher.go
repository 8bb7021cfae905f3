package cashbox

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "cash_boxes"

type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityCashbox }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "nameAr", "nameEn", "branchName")
		if !core.MatchesAny(term, fields) {
			continue
		}

		title := core.StringField(doc, "nameAr")
		if title == "" {
			title = core.StringField(doc, "nameEn")
		}
		results = append(results, core.SearchResult{
			ID:       doc.ID,
			Type:     core.EntityCashbox,
			Title:    title,
			Subtitle: core.StringField(doc, "branchName"),
			Icon:     "inbox",
			Route:    "/finance/cashboxes/" + doc.ID,
			Score:    core.Relevance(term, fields),
			Data:     doc.Fields,
		})
	}
	return results, nil
}
