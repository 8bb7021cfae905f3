package core

import (
	"testing"
	"time"
)

func TestStringField(t *testing.T) {
	doc := Document{
		ID:        "cust-1",
		CreatedAt: time.Now(),
		Fields: map[string]any{
			"nameAr":  "محمد علي",
			"balance": 1250.5,
			"visits":  3,
			"active":  true,
			"notes":   nil,
		},
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"nameAr", "محمد علي"},
		{"balance", "1250.5"},
		{"visits", "3"},
		{"active", "true"},
		{"notes", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		if got := StringField(doc, tt.key); got != tt.expected {
			t.Errorf("StringField(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestCollectFieldsSkipsEmpty(t *testing.T) {
	doc := Document{
		ID: "cust-2",
		Fields: map[string]any{
			"nameAr": "شركة النور",
			"nameEn": "",
			"phone":  "0501234567",
		},
	}

	fields := CollectFields(doc, "nameAr", "nameEn", "phone", "email")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(fields), fields)
	}
	if fields[0] != "شركة النور" || fields[1] != "0501234567" {
		t.Errorf("unexpected field values: %v", fields)
	}
}
