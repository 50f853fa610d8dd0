package gateway

import (
	"bytes"
	"encoding/json"
)

// decodeList accepts a bare JSON array or an object wrapping the array under
// one of keys (tried in order). Any other shape yields an empty list.
func decodeList[T any](raw []byte, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}

	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return out, nil
	}
	for _, key := range keys {
		inner := bytes.TrimSpace(wrapped[key])
		if len(inner) == 0 || inner[0] != '[' {
			continue
		}
		if err := json.Unmarshal(inner, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return out, nil
}

// decodeOne reads an entity that may come bare or wrapped under key.
func decodeOne[T any](raw []byte, key string) (T, error) {
	var zero T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return zero, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok && len(bytes.TrimSpace(inner)) > 0 && bytes.TrimSpace(inner)[0] == '{' {
			raw = inner
		}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, err
	}
	return out, nil
}
