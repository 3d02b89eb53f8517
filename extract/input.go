package extract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when document input is not a sequence of
// string spans (or a sequence of pages of string spans).
var ErrMalformedInput = errors.New("extract: malformed document input")

// DecodePages parses JSON document input. Two shapes are accepted: a flat
// array of strings (one page) or an array of arrays of strings (one per
// page). Any other shape fails before a single record is produced.
func DecodePages(data []byte) ([][]string, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %s, want array", ErrMalformedInput, jsonKind(raw))
	}
	if len(items) == 0 {
		return [][]string{}, nil
	}

	if _, flat := items[0].(string); flat {
		page, err := stringSpans(items, "span")
		if err != nil {
			return nil, err
		}
		return [][]string{page}, nil
	}

	pages := make([][]string, 0, len(items))
	for i, item := range items {
		spans, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: page %d is %s, want array", ErrMalformedInput, i, jsonKind(item))
		}
		page, err := stringSpans(spans, fmt.Sprintf("page %d span", i))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func stringSpans(items []any, what string) ([]string, error) {
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s %d is %s, want string", ErrMalformedInput, what, i, jsonKind(item))
		}
		out[i] = s
	}
	return out, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
