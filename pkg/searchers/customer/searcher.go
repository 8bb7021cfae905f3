package customer

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "customers"

// Searcher matches customers on both name languages, the contact fields and
// the commercial registration number.
type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityCustomer }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "nameAr", "nameEn", "phone", "email", "commercialReg")
		if !core.MatchesAny(term, fields) {
			continue
		}

		result := s.buildResult(doc)
		result.Score = core.Relevance(term, fields)
		if email := core.StringField(doc, "email"); email != "" {
			result.Description = email
		}
		results = append(results, result)
	}
	return results, nil
}

// ConvertRecent builds the unscored result used by the recent-items fallback.
func (s *Searcher) ConvertRecent(doc core.Document) core.SearchResult {
	result := s.buildResult(doc)
	result.Description = "عميل جديد"
	return result
}

func (s *Searcher) buildResult(doc core.Document) core.SearchResult {
	title := core.StringField(doc, "nameAr")
	if title == "" {
		title = core.StringField(doc, "nameEn")
	}
	return core.SearchResult{
		ID:       doc.ID,
		Type:     core.EntityCustomer,
		Title:    title,
		Subtitle: core.StringField(doc, "phone"),
		Icon:     "users",
		Route:    "/customers/" + doc.ID,
		Data:     doc.Fields,
	}
}
