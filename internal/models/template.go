// Package models defines the data types exchanged with the canvas backend.
package models

import (
	"encoding/json"
	"strconv"
)

// Template is a named, sized visual composition with a serialized object
// graph, optional tags, and an optional preview image.
type Template struct {
	// ID is server-assigned and immutable after creation. Empty until the
	// template has been created.
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Width and Height are in pixels and must be positive.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Objects is the scene graph, kept as raw JSON so arbitrary shapes
	// round-trip through serialization without loss.
	Objects json.RawMessage `json:"objects,omitempty"`

	// Tags preserve insertion order for display; matching ignores order.
	Tags []string `json:"tags,omitempty"`

	// PreviewImage is a URL to the stored preview, if any.
	PreviewImage string `json:"preview_image,omitempty"`

	// IsPublic reports visibility; nil means the backend did not say.
	IsPublic *bool `json:"is_public,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UnmarshalJSON tolerates backends that serialize id, width, and height as
// either JSON numbers or strings.
func (t *Template) UnmarshalJSON(data []byte) error {
	type alias Template
	aux := struct {
		ID     json.RawMessage `json:"id"`
		Width  json.RawMessage `json:"width"`
		Height json.RawMessage `json:"height"`
		*alias
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.ID = flexibleString(aux.ID)
	t.Width = flexibleInt(aux.Width)
	t.Height = flexibleInt(aux.Height)
	return nil
}

// flexibleString decodes a raw JSON value that may be a string or a number.
func flexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// flexibleInt decodes a raw JSON value that may be a number or a numeric string.
func flexibleInt(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}

// TagList returns the template's tags. Satisfies the tag-extraction
// helper's interface.
func (t Template) TagList() []string {
	return t.Tags
}
