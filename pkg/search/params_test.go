package search

import (
	"reflect"
	"testing"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string][]string
		want    Options
		wantErr bool
	}{
		{
			name:   "empty",
			params: map[string][]string{},
			want:   Options{},
		},
		{
			name: "full",
			params: map[string][]string{
				"q":     {"محمد"},
				"type":  {"customer", "invoice"},
				"limit": {"20"},
			},
			want: Options{
				Query: "محمد",
				Types: []core.EntityType{core.EntityCustomer, core.EntityInvoice},
				Limit: 20,
			},
		},
		{
			name:    "unknown type",
			params:  map[string][]string{"type": {"spaceship"}},
			wantErr: true,
		},
		{
			name:   "non-numeric limit ignored",
			params: map[string][]string{"q": {"x"}, "limit": {"abc"}},
			want:   Options{Query: "x"},
		},
		{
			name:   "non-positive limit ignored",
			params: map[string][]string{"q": {"x"}, "limit": {"-5"}},
			want:   Options{Query: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
