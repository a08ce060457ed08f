package legacy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// PageModel is the model discriminator of exported blog pages.
const PageModel = "blog.blogpage"

var ErrInvalidBody = errors.New("legacy body is neither a JSON string nor an array")

type (
	// Record is one entry of the legacy CMS export.
	Record struct {
		Model  string `json:"model"`
		PK     uint   `json:"pk"`
		Fields Fields `json:"fields"`
	}

	Fields struct {
		Subtitle      string          `json:"subtitle"`
		Body          json.RawMessage `json:"body"`
		Introduction  string          `json:"introduction"`
		DatePublished string          `json:"date_published"`
	}

	// Block is one typed content block of a page body.
	Block struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
)

// LoadRecords decodes a whole export.
func LoadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// Blocks decodes the body, which the export stores either as a JSON
// encoded string or as a plain array.
func (r Record) Blocks() ([]Block, error) {
	raw := bytes.TrimSpace(r.Fields.Body)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		if encoded == "" {
			return nil, nil
		}
		raw = []byte(encoded)
	case '[':
	default:
		return nil, ErrInvalidBody
	}

	var blocks []Block
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// HTML returns the block value when it is a string, empty otherwise.
func (b Block) HTML() string {
	var s string
	if err := json.Unmarshal(b.Value, &s); err != nil {
		return ""
	}
	return s
}
