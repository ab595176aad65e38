package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NormalizeList maps every list envelope the backend is known to use onto a
// flat slice of records: a bare array, {data:[...]}, {data:{data:[...]}} and
// {surveys:[...]}. Valid JSON of any other shape is an empty list.
func NormalizeList(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, fmt.Errorf("backend: response is not valid json")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil {
		return nonNil(items), nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return []json.RawMessage{}, nil
	}

	if data, ok := envelope["data"]; ok {
		if err := json.Unmarshal(data, &items); err == nil {
			return nonNil(items), nil
		}

		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			if nested, ok := inner["data"]; ok {
				if err := json.Unmarshal(nested, &items); err == nil {
					return nonNil(items), nil
				}
			}
		}
	}

	if surveys, ok := envelope["surveys"]; ok {
		if err := json.Unmarshal(surveys, &items); err == nil {
			return nonNil(items), nil
		}
	}

	return []json.RawMessage{}, nil
}

// NormalizeRecord unwraps a single record sent either bare or as {data:{...}}.
func NormalizeRecord(body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("backend: record is not a json object: %w", err)
	}

	if data, ok := envelope["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			return data, nil
		}
	}

	return bytes.TrimSpace(body), nil
}

func DecodeList[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("backend: decode item %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

// LastPage reads the last_page marker of a paginated envelope, at the top
// level, under data or under meta. It is 1 when absent.
func LastPage(body []byte) int {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return 1
	}

	if lp := readLastPage(envelope); lp > 0 {
		return lp
	}

	for _, key := range []string{"data", "meta"} {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(envelope[key], &inner); err != nil {
			continue
		}
		if lp := readLastPage(inner); lp > 0 {
			return lp
		}
	}

	return 1
}

func readLastPage(m map[string]json.RawMessage) int {
	var lp int
	if err := json.Unmarshal(m["last_page"], &lp); err != nil {
		return 0
	}
	return lp
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}
