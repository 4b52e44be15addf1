// Package templates implements the canvas-template repository: CRUD and
// tag listing against the backend, with response-envelope normalization
// and client-side filtering for the capabilities the backend lacks.
package templates

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aiscreen-io/canvasctl/internal/api"
	"github.com/aiscreen-io/canvasctl/internal/config"
	"github.com/aiscreen-io/canvasctl/internal/constants"
	"github.com/aiscreen-io/canvasctl/internal/logging"
	"github.com/aiscreen-io/canvasctl/internal/models"
)

// Repository performs template operations against the backend.
type Repository struct {
	client      *api.Client
	logger      *logging.Logger
	deleteStyle config.DeleteStyle
	updateStyle config.UpdateStyle
	progressOut io.Writer
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithUploadProgress renders a progress bar to out while preview images
// upload. Off by default so library users and tests stay quiet.
func WithUploadProgress(out io.Writer) RepositoryOption {
	return func(r *Repository) {
		r.progressOut = out
	}
}

// NewRepository creates a repository over the shared API client. The
// delete and update styles come from config because backends disagree on
// how those verbs are spelled.
func NewRepository(client *api.Client, cfg *config.Config, logger *logging.Logger, opts ...RepositoryOption) *Repository {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	r := &Repository{
		client:      client,
		logger:      logger,
		deleteStyle: cfg.DeleteStyle,
		updateStyle: cfg.UpdateStyle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List fetches a page of templates and applies the client-side parts of
// the filter (substring search, tag intersection). Pagination metadata
// reflects the backend's answer with sensible fallbacks when the
// envelope omits it.
func (r *Repository) List(ctx context.Context, filters models.Filters) (*models.TemplatePage, error) {
	page := filters.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	limit := filters.Limit
	if limit < 1 {
		limit = constants.DefaultPageLimit
	}

	q := url.Values{}
	q.Set("page[number]", strconv.Itoa(page))
	if filters.CompanyID != "" {
		q.Set("filter[company_id]", filters.CompanyID)
	}
	if filters.CollectionID != "" {
		q.Set("filter[collection_id]", filters.CollectionID)
	}
	// Best-effort server-side hints; filtering is re-applied locally for
	// backends that ignore them.
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if len(filters.Tags) > 0 {
		q.Set("tags", strings.Join(filters.Tags, ","))
	}

	path := constants.TemplatesEndpoint + "?" + q.Encode()
	resp, err := r.client.Do(ctx, nethttp.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, api.ParseResponseError(resp, "failed to load templates")
	}

	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	result, err := normalizeListResponse(raw, page, limit)
	if err != nil {
		return nil, err
	}

	result.Items = Filter(result.Items, filters)
	return result, nil
}

// Get fetches one template by id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Template, error) {
	if id == "" {
		return nil, api.NewError(api.KindValidation, "template id is required")
	}

	resp, err := r.client.Do(ctx, nethttp.MethodGet, templatePath(id), nil, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, api.ParseResponseError(resp, fmt.Sprintf("failed to load template %s", id))
	}

	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	return decodeTemplate(raw)
}

// Create submits a new template as a multipart form and returns the
// created item.
func (r *Repository) Create(ctx context.Context, input Input) (*models.Template, error) {
	body, contentType, err := buildMultipart(input, r.progressOut, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(ctx, nethttp.MethodPost, constants.TemplatesEndpoint, body, contentType)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK && resp.StatusCode != nethttp.StatusCreated {
		return nil, api.ParseResponseError(resp, "failed to create template")
	}

	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	return decodeTemplate(raw)
}

// Update replaces a template. Depending on config it issues a native PUT
// or tunnels through POST with a _method override field, for backends
// whose multipart parsing only runs on POST.
func (r *Repository) Update(ctx context.Context, id string, input Input) (*models.Template, error) {
	if id == "" {
		return nil, api.NewError(api.KindValidation, "template id is required")
	}

	method := nethttp.MethodPut
	var extra map[string]string
	if r.updateStyle == config.UpdateByOverride {
		method = nethttp.MethodPost
		extra = map[string]string{"_method": "PUT"}
	}

	body, contentType, err := buildMultipart(input, r.progressOut, extra)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(ctx, method, templatePath(id), body, contentType)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, api.ParseResponseError(resp, fmt.Sprintf("failed to update template %s", id))
	}

	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	return decodeTemplate(raw)
}

// Delete removes a template. Depending on config the id travels in the
// path or in a JSON body on the collection endpoint.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return api.NewError(api.KindValidation, "template id is required")
	}

	var resp *nethttp.Response
	var err error
	if r.deleteStyle == config.DeleteByBody {
		resp, err = r.client.DoJSON(ctx, nethttp.MethodDelete, constants.TemplatesEndpoint, map[string]string{"id": id})
	} else {
		resp, err = r.client.Do(ctx, nethttp.MethodDelete, templatePath(id), nil, "")
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK && resp.StatusCode != nethttp.StatusNoContent {
		return api.ParseResponseError(resp, fmt.Sprintf("failed to delete template %s", id))
	}
	return nil
}

// ListTags fetches the backend's tag list. Tags are an enhancement, not
// a requirement, so every failure mode degrades to an empty list.
func (r *Repository) ListTags(ctx context.Context) []string {
	resp, err := r.client.Do(ctx, nethttp.MethodGet, constants.TemplateTagsEndpoint, nil, "")
	if err != nil {
		r.logger.Warn().Err(err).Msg("Tag listing unavailable")
		return nil
	}
	if resp.StatusCode != nethttp.StatusOK {
		resp.Body.Close()
		r.logger.Warn().Int("status", resp.StatusCode).Msg("Tag listing unavailable")
		return nil
	}

	raw, err := readBody(resp)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Tag listing unreadable")
		return nil
	}

	tags, err := normalizeTagsResponse(raw)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Tag listing in unexpected shape")
		return nil
	}
	return tags
}

func templatePath(id string) string {
	return constants.TemplatesEndpoint + "/" + url.PathEscape(id)
}

func readBody(resp *nethttp.Response) ([]byte, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.NetworkError(err, "failed to read response")
	}
	return raw, nil
}
