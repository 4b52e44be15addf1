package models

// Filters narrows a template listing. Search and Tags are applied
// client-side when the backend does not support them natively; CompanyID
// and CollectionID map to the backend's filter[...] query parameters.
type Filters struct {
	Search       string
	Tags         []string
	CompanyID    string
	CollectionID string
	Page         int
	Limit        int
}

// Pagination describes the current page of a template listing. Derived
// from each fetch; never persisted.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// TemplatePage is a normalized listing response: a uniform item list plus
// pagination regardless of the envelope shape the backend used.
type TemplatePage struct {
	Items      []Template
	Pagination Pagination
}

// Stats aggregates visibility counts over the loaded templates.
type Stats struct {
	Total     int
	Published int
	Private   int
}
