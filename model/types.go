package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringList decodes a JSON array of strings, a JSON-encoded array inside a
// string, a comma separated string, or null.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			*l = items
			return nil
		}
	}

	parts := strings.Split(raw, ",")
	items = make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}

	*l = items
	return nil
}

type SocialMedia struct {
	Platform string `json:"platform"`
	Url      string `json:"url"`
}

// SocialMediaList accepts either an array or the JSON text the backend stores.
// Anything unparseable decodes to an empty list.
type SocialMediaList []SocialMedia

func (l *SocialMediaList) UnmarshalJSON(data []byte) error {
	*l = ParseSocialMedia(data)
	return nil
}

func ParseSocialMedia(data []byte) SocialMediaList {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var items []SocialMedia
	if err := json.Unmarshal(data, &items); err == nil {
		return items
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	return items
}
