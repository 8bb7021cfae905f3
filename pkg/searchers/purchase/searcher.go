package purchase

import (
	"context"
	"fmt"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "purchase_invoices"

type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityPurchase }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "invoiceNumber", "supplierName")
		if !core.MatchesAny(term, fields) {
			continue
		}

		description := ""
		if total := core.StringField(doc, "total"); total != "" {
			description = fmt.Sprintf("الإجمالي %s", total)
		}
		results = append(results, core.SearchResult{
			ID:          doc.ID,
			Type:        core.EntityPurchase,
			Title:       "فاتورة شراء " + core.StringField(doc, "invoiceNumber"),
			Subtitle:    core.StringField(doc, "supplierName"),
			Description: description,
			Icon:        "shopping-cart",
			Route:       "/purchases/invoices/" + doc.ID,
			Score:       core.Relevance(term, fields),
			Data:        doc.Fields,
		})
	}
	return results, nil
}
