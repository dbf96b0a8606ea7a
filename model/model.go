package model

import (
	"time"

	gojson "github.com/goccy/go-json"
)

// Question types as assigned by the form builder.
const (
	TypeShortAnswer    = "shortAnswer"
	TypeParagraph      = "paragraph"
	TypeMultipleChoice = "multipleChoice"
	TypeCheckbox       = "checkbox"
	TypeDropdown       = "dropdown"
)

type Form struct {
	FormID      string     `json:"form_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID       int64    `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type ResponseSet struct {
	ResponseSetID string           `json:"response_set_id"`
	Answers       map[int64]string `json:"answers"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EncodeOptions serializes a question's choice list for the options
// column. A nil list encodes as an empty JSON array.
func EncodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	raw, err := gojson.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeOptions parses a stored options column. Empty or malformed
// payloads degrade to an empty list instead of failing the read.
func DecodeOptions(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var options []string
	if err := gojson.Unmarshal([]byte(raw), &options); err != nil || options == nil {
		return []string{}
	}
	return options
}
