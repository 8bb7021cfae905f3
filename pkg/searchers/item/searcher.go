package item

import (
	"context"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func init() {
	core.RegisterSearcher(&Searcher{})
}

// Collection is exported because the barcode lookup path queries it
// directly with an equality predicate.
const Collection = "inventory_items"

// BarcodeField is the raw field holding an item's barcode. The aggregator's
// barcode lookup uses it as an exact-equality predicate; the free-text
// routine below also tests it as a substring like any other field.
const BarcodeField = "barcode"

type Searcher struct{}

func (s *Searcher) Type() core.EntityType { return core.EntityItem }

func (s *Searcher) Collection() string { return Collection }

func (s *Searcher) Search(ctx context.Context, reader core.DocumentReader, term string) ([]core.SearchResult, error) {
	docs, err := reader.GetAll(ctx, Collection)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, doc := range docs {
		fields := core.CollectFields(doc, "name", "itemCode", BarcodeField)
		if !core.MatchesAny(term, fields) {
			continue
		}

		result := BuildResult(doc)
		result.Score = core.Relevance(term, fields)
		results = append(results, result)
	}
	return results, nil
}

// BuildResult converts a raw item document into an unscored result. Exported
// because the barcode lookup path builds results without running the
// free-text routine.
func BuildResult(doc core.Document) core.SearchResult {
	description := ""
	if price := core.StringField(doc, "salePrice"); price != "" {
		description = "سعر البيع: " + price
	}
	return core.SearchResult{
		ID:          doc.ID,
		Type:        core.EntityItem,
		Title:       core.StringField(doc, "name"),
		Subtitle:    core.StringField(doc, "itemCode"),
		Description: description,
		Icon:        "box",
		Route:       "/inventory/items/" + doc.ID,
		Data:        doc.Fields,
	}
}
