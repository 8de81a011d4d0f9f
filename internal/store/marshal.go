package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalAttributes converts driver attributes to JSON TEXT for storage.
// A nil slice is stored as "[]" so the column never holds null.
func marshalAttributes(attrs []string) (string, error) {
	if attrs == nil {
		attrs = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attrs); err != nil {
		return "", fmt.Errorf("marshal driver attributes: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// unmarshalAttributes parses driver attributes from JSON TEXT.
func unmarshalAttributes(data string) ([]string, error) {
	var attrs []string
	if err := json.Unmarshal([]byte(data), &attrs); err != nil {
		return nil, fmt.Errorf("unmarshal driver attributes: %w", err)
	}
	if attrs == nil {
		attrs = []string{}
	}
	return attrs, nil
}
