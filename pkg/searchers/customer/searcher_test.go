package customer

import (
	"context"
	"testing"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

type fakeReader struct {
	docs []core.Document
}

func (f *fakeReader) GetAll(ctx context.Context, collection string) ([]core.Document, error) {
	return f.docs, nil
}

func (f *fakeReader) GetByField(ctx context.Context, collection, field string, value any) ([]core.Document, error) {
	return nil, nil
}

func (f *fakeReader) GetRecent(ctx context.Context, collection, orderField string, limit int) ([]core.Document, error) {
	return nil, nil
}

func TestSearchMatchesAnyTestedField(t *testing.T) {
	reader := &fakeReader{docs: []core.Document{
		{
			ID:     "cust-1",
			Fields: map[string]any{"nameAr": "محمد علي", "email": "m@x.com"},
		},
		{
			ID:     "cust-2",
			Fields: map[string]any{"nameAr": "خالد", "email": "k@y.com"},
		},
	}}

	s := &Searcher{}

	// Match on email only; nameAr does not contain the term.
	results, err := s.Search(context.Background(), reader, "m@x")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "cust-1" {
		t.Errorf("expected cust-1, got %s", results[0].ID)
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score, got %d", results[0].Score)
	}

	// No tested field contains the term.
	results, err = s.Search(context.Background(), reader, "سيارة")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestResultShape(t *testing.T) {
	reader := &fakeReader{docs: []core.Document{
		{
			ID: "cust-9",
			Fields: map[string]any{
				"nameAr": "شركة النور",
				"phone":  "0501234567",
				"email":  "noor@example.com",
			},
		},
	}}

	s := &Searcher{}
	results, err := s.Search(context.Background(), reader, "النور")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Type != core.EntityCustomer {
		t.Errorf("expected customer type, got %s", r.Type)
	}
	if r.Title != "شركة النور" {
		t.Errorf("unexpected title %q", r.Title)
	}
	if r.Subtitle != "0501234567" {
		t.Errorf("unexpected subtitle %q", r.Subtitle)
	}
	if r.Route != "/customers/cust-9" {
		t.Errorf("unexpected route %q", r.Route)
	}
	if r.Data["email"] != "noor@example.com" {
		t.Error("raw document should pass through unmodified")
	}
}

func TestEnglishNameFallbackTitle(t *testing.T) {
	s := &Searcher{}
	result := s.ConvertRecent(core.Document{
		ID:     "cust-3",
		Fields: map[string]any{"nameEn": "Al Noor Trading"},
	})
	if result.Title != "Al Noor Trading" {
		t.Errorf("expected English name fallback, got %q", result.Title)
	}
	if result.Description != "عميل جديد" {
		t.Errorf("recent results must carry the generic label, got %q", result.Description)
	}
	if result.Score != 0 {
		t.Errorf("recent results must not be scored, got %d", result.Score)
	}
}
