package invoice

import (
	"context"
	"fmt"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

const collection = "sales_invoices"

// Searcher matches sales invoices on their number and the customer contact
// fields denormalized onto the invoice document.
type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityInvoice }

func (s *Searcher) Collection() string { return collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "invoiceNumber", "customerName", "customerPhone")
		if !core.MatchesAny(term, fields) {
			continue
		}

		result := s.buildResult(doc)
		result.Score = core.Relevance(term, fields)
		result.Description = describe(doc)
		results = append(results, result)
	}
	return results, nil
}

// ConvertRecent builds the unscored result used by the recent-items
// fallback. The description is the fixed "new invoice" label, not the
// computed date/total line.
func (s *Searcher) ConvertRecent(doc core.Document) core.SearchResult {
	result := s.buildResult(doc)
	result.Description = "فاتورة جديدة"
	return result
}

func (s *Searcher) buildResult(doc core.Document) core.SearchResult {
	return core.SearchResult{
		ID:       doc.ID,
		Type:     core.EntityInvoice,
		Title:    "فاتورة " + core.StringField(doc, "invoiceNumber"),
		Subtitle: core.StringField(doc, "customerName"),
		Icon:     "receipt",
		Route:    "/sales/invoices/" + doc.ID,
		Data:     doc.Fields,
	}
}

func describe(doc core.Document) string {
	date := core.StringField(doc, "invoiceDate")
	total := core.StringField(doc, "total")
	switch {
	case date != "" && total != "":
		return fmt.Sprintf("بتاريخ %s - الإجمالي %s", date, total)
	case date != "":
		return "بتاريخ " + date
	case total != "":
		return "الإجمالي " + total
	default:
		return ""
	}
}
