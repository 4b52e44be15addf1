package templates

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/aiscreen-io/canvasctl/internal/api"
	"github.com/aiscreen-io/canvasctl/internal/models"
)

// The backend answers list requests in three shapes depending on version
// and endpoint: a bare JSON array, a {data: [...], meta: {...}} wrapper,
// or a single object. Everything below folds them into one TemplatePage.

// flexCount tolerates pagination counters arriving as numbers or numeric
// strings.
type flexCount int

func (f *flexCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = flexCount(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexCount(n)
	return nil
}

type listMeta struct {
	Total       flexCount `json:"total"`
	CurrentPage flexCount `json:"current_page"`
	PerPage     flexCount `json:"per_page"`
}

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *listMeta       `json:"meta"`
}

// normalizeListResponse folds any of the three envelope shapes into a
// TemplatePage. requestedPage and requestedLimit fill pagination gaps the
// envelope leaves open; a missing total falls back to the item count.
func normalizeListResponse(raw []byte, requestedPage, requestedLimit int) (*models.TemplatePage, error) {
	items, meta, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	page := &models.TemplatePage{
		Items: items,
		Pagination: models.Pagination{
			Page:  requestedPage,
			Limit: requestedLimit,
			Total: len(items),
		},
	}
	if meta != nil {
		if meta.Total > 0 {
			page.Pagination.Total = int(meta.Total)
		}
		if meta.CurrentPage > 0 {
			page.Pagination.Page = int(meta.CurrentPage)
		}
		if meta.PerPage > 0 {
			page.Pagination.Limit = int(meta.PerPage)
		}
	}
	return page, nil
}

func decodeEnvelope(raw []byte) ([]models.Template, *listMeta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, nil
	}

	// Bare array.
	if trimmed[0] == '[' {
		var items []models.Template
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, api.NetworkError(err, "failed to decode template list")
		}
		return items, nil, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, nil, api.NetworkError(err, "failed to decode template list")
	}

	// {data: [...]} or {data: {...}} wrapper.
	if inner := bytes.TrimSpace(envelope.Data); len(inner) > 0 && string(inner) != "null" {
		if inner[0] == '[' {
			var items []models.Template
			if err := json.Unmarshal(inner, &items); err != nil {
				return nil, nil, api.NetworkError(err, "failed to decode template list")
			}
			return items, envelope.Meta, nil
		}
		var item models.Template
		if err := json.Unmarshal(inner, &item); err != nil {
			return nil, nil, api.NetworkError(err, "failed to decode template")
		}
		return []models.Template{item}, envelope.Meta, nil
	}

	// Single object with no wrapper.
	var item models.Template
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, nil, api.NetworkError(err, "failed to decode template")
	}
	return []models.Template{item}, envelope.Meta, nil
}

// decodeTemplate decodes a single-item response, unwrapping an optional
// {data: {...}} envelope.
func decodeTemplate(raw []byte) (*models.Template, error) {
	trimmed := bytes.TrimSpace(raw)

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			if inner := bytes.TrimSpace(envelope.Data); len(inner) > 0 && inner[0] == '{' {
				trimmed = inner
			}
		}
	}

	var item models.Template
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, api.NetworkError(err, "failed to decode template")
	}
	return &item, nil
}

// normalizeTagsResponse accepts a bare string array or a {data: [...]}
// wrapper.
func normalizeTagsResponse(raw []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var tags []string
		if err := json.Unmarshal(trimmed, &tags); err != nil {
			return nil, err
		}
		return tags, nil
	}

	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
