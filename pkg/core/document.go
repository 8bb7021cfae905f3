package core

import (
	"fmt"
	"strconv"
	"time"
)

// Document is a raw record from the document store. Fields is schema-less:
// the store defines the shape and this component never validates it, only
// probes individual keys with safe conversions.
type Document struct {
	ID        string
	CreatedAt time.Time
	Fields    map[string]any
}

// StringField extracts the named field as a string, converting numeric
// values where that makes sense (invoice numbers and codes are stored as
// either in practice). Missing or incompatible values yield "".
func StringField(doc Document, key string) string {
	value, ok := doc.Fields[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// CollectFields returns the non-empty string values of the given keys, in
// order. Searchers use this to assemble the field set they test a term
// against.
func CollectFields(doc Document, keys ...string) []string {
	fields := make([]string, 0, len(keys))
	for _, key := range keys {
		if v := StringField(doc, key); v != "" {
			fields = append(fields, v)
		}
	}
	return fields
}

// FormatFields renders a document's raw fields for terminal display.
func FormatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}

	out := "\n  Fields:"
	for key, value := range fields {
		valueStr := fmt.Sprintf("%v", value)
		if len(valueStr) > 100 {
			valueStr = valueStr[:97] + "..."
		}
		out += fmt.Sprintf("\n    %s: %s", key, valueStr)
	}
	return out
}
