package templates

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aiscreen-io/canvasctl/internal/api"
	"github.com/aiscreen-io/canvasctl/internal/config"
	"github.com/aiscreen-io/canvasctl/internal/logging"
	"github.com/aiscreen-io/canvasctl/internal/models"
)

func newTestRepo(t *testing.T, handler http.Handler, mutate func(*config.Config)) *Repository {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logging.NewLogger(io.Discard)
	client, err := api.NewClient(srv.URL, nil, logger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}
	return NewRepository(client, cfg, logger)
}

func itemNames(items []models.Template) []string {
	names := make([]string, len(items))
	for i, t := range items {
		names[i] = t.Name
	}
	return names
}

func TestListNormalizesEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNames []string
		wantTotal int
		wantPage  int
		wantLimit int
	}{
		{
			name:      "bare array",
			body:      `[{"id":1,"name":"One"},{"id":2,"name":"Two"}]`,
			wantNames: []string{"One", "Two"},
			wantTotal: 2,
			wantPage:  1,
			wantLimit: 12,
		},
		{
			name:      "data wrapper with meta",
			body:      `{"data":[{"id":"3","name":"Three"}],"meta":{"total":41,"current_page":4,"per_page":10}}`,
			wantNames: []string{"Three"},
			wantTotal: 41,
			wantPage:  4,
			wantLimit: 10,
		},
		{
			name:      "data wrapper without meta",
			body:      `{"data":[{"id":5,"name":"Five"}]}`,
			wantNames: []string{"Five"},
			wantTotal: 1,
			wantPage:  1,
			wantLimit: 12,
		},
		{
			name:      "single object",
			body:      `{"id":7,"name":"Solo"}`,
			wantNames: []string{"Solo"},
			wantTotal: 1,
			wantPage:  1,
			wantLimit: 12,
		},
		{
			name:      "string meta counters",
			body:      `{"data":[{"id":8,"name":"Eight"}],"meta":{"total":"30","current_page":"2","per_page":"15"}}`,
			wantNames: []string{"Eight"},
			wantTotal: 30,
			wantPage:  2,
			wantLimit: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			}), nil)

			page, err := repo.List(context.Background(), models.Filters{})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if got := itemNames(page.Items); !reflect.DeepEqual(got, tt.wantNames) {
				t.Errorf("items = %v, want %v", got, tt.wantNames)
			}
			want := models.Pagination{Page: tt.wantPage, Limit: tt.wantLimit, Total: tt.wantTotal}
			if page.Pagination != want {
				t.Errorf("pagination = %+v, want %+v", page.Pagination, want)
			}
		})
	}
}

func TestListSendsPageAndFilterParams(t *testing.T) {
	var gotQuery map[string][]string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `[]`)
	}), nil)

	_, err := repo.List(context.Background(), models.Filters{
		Page:         3,
		CompanyID:    "42",
		CollectionID: "7",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	checks := map[string]string{
		"page[number]":          "3",
		"filter[company_id]":    "42",
		"filter[collection_id]": "7",
	}
	for key, want := range checks {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %q = %v, want %q", key, got, want)
		}
	}
}

func TestListAppliesSearchFilter(t *testing.T) {
	body := `[
		{"id":1,"name":"Logo Banner","tags":["sale"]},
		{"id":2,"name":"Plain","description":"a logotype study","tags":[]},
		{"id":3,"name":"Spring","tags":["logo-pack"]},
		{"id":4,"name":"Unrelated","description":"nothing here","tags":["misc"]}
	]`
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}), nil)

	page, err := repo.List(context.Background(), models.Filters{Search: "logo"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"Logo Banner", "Plain", "Spring"}
	if got := itemNames(page.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("filtered names = %v, want %v", got, want)
	}
}

func TestListAppliesTagFilter(t *testing.T) {
	body := `[
		{"id":1,"name":"A","tags":["sale","summer"]},
		{"id":2,"name":"B","tags":["winter"]},
		{"id":3,"name":"C","tags":["summer"]}
	]`
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}), nil)

	page, err := repo.List(context.Background(), models.Filters{Tags: []string{"summer"}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"A", "C"}
	if got := itemNames(page.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("filtered names = %v, want %v", got, want)
	}
}

func TestGetUnwrapsDataEnvelope(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/canvas_templates/15" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"data":{"id":15,"name":"Wrapped","width":"1920","height":1080}}`)
	}), nil)

	got, err := repo.Get(context.Background(), "15")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Wrapped" || got.Width != 1920 || got.Height != 1080 {
		t.Errorf("template = %+v", got)
	}
}

func TestGetMissingTemplateIsNotFound(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"No query results"}`)
	}), nil)

	_, err := repo.Get(context.Background(), "999")
	if !api.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestCreateSendsMultipartFields(t *testing.T) {
	var form struct {
		values map[string][]string
		file   []byte
	}
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		form.values = r.MultipartForm.Value
		if f, _, err := r.FormFile("preview_image"); err == nil {
			form.file, _ = io.ReadAll(f)
			f.Close()
		}
		io.WriteString(w, `{"data":{"id":100,"name":"New"}}`)
	}), nil)

	imgPath := filepath.Join(t.TempDir(), "preview.png")
	if err := os.WriteFile(imgPath, []byte("png-bytes"), 0644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	created, err := repo.Create(context.Background(), Input{
		Name:             "New",
		Description:      "fresh",
		Width:            800,
		Height:           600,
		Objects:          json.RawMessage(`[{"type":"rect"}]`),
		Tags:             []string{"sale", "summer"},
		PreviewImagePath: imgPath,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "100" {
		t.Errorf("created id = %q", created.ID)
	}

	checks := map[string][]string{
		"name":        {"New"},
		"width":       {"800"},
		"height":      {"600"},
		"objects":     {`[{"type":"rect"}]`},
		"description": {"fresh"},
		"tags[]":      {"sale", "summer"},
	}
	for key, want := range checks {
		if got := form.values[key]; !reflect.DeepEqual(got, want) {
			t.Errorf("field %q = %v, want %v", key, got, want)
		}
	}
	if string(form.file) != "png-bytes" {
		t.Errorf("preview_image = %q", form.file)
	}
}

func TestCreateWithoutTagsSendsEmptyMarker(t *testing.T) {
	var values map[string][]string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		values = r.MultipartForm.Value
		io.WriteString(w, `{"id":101,"name":"Bare"}`)
	}), nil)

	_, err := repo.Create(context.Background(), Input{Name: "Bare", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The backend distinguishes "no tags" from "field missing": an empty
	// tags value must still be present.
	if got, ok := values["tags"]; !ok || !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("tags field = %v (present=%v), want explicit empty value", got, ok)
	}
	if _, ok := values["tags[]"]; ok {
		t.Error("unexpected tags[] entries for an empty tag list")
	}
	// A nil object graph still serializes to valid JSON.
	if got := values["objects"]; !reflect.DeepEqual(got, []string{"[]"}) {
		t.Errorf("objects field = %v, want [\"[]\"]", got)
	}
}

func TestUpdateUsesPutByDefault(t *testing.T) {
	var gotMethod string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		io.WriteString(w, `{"id":9,"name":"Edited"}`)
	}), nil)

	_, err := repo.Update(context.Background(), "9", Input{Name: "Edited", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
}

func TestUpdateOverrideStyleTunnelsThroughPost(t *testing.T) {
	var gotMethod, gotOverride string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		r.ParseMultipartForm(32 << 20)
		gotOverride = r.FormValue("_method")
		io.WriteString(w, `{"id":9,"name":"Edited"}`)
	}), func(cfg *config.Config) {
		cfg.UpdateStyle = config.UpdateByOverride
	})

	_, err := repo.Update(context.Background(), "9", Input{Name: "Edited", Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotOverride != "PUT" {
		t.Errorf("_method = %q, want PUT", gotOverride)
	}
}

func TestDeleteByPath(t *testing.T) {
	var gotMethod, gotPath string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), nil)

	if err := repo.Delete(context.Background(), "12"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/canvas_templates/12" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestDeleteByBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{}`)
	}), func(cfg *config.Config) {
		cfg.DeleteStyle = config.DeleteByBody
	})

	if err := repo.Delete(context.Background(), "12"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotPath != "/api/v1/canvas_templates" {
		t.Errorf("path = %q, want collection endpoint", gotPath)
	}
	if gotBody["id"] != "12" {
		t.Errorf("body id = %q", gotBody["id"])
	}
}

func TestListTagsFailsSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    []string
	}{
		{
			name: "bare array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `["sale","summer"]`)
			},
			want: []string{"sale", "summer"},
		},
		{
			name: "data wrapper",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"data":["winter"]}`)
			},
			want: []string{"winter"},
		},
		{
			name: "endpoint missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: nil,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"data":{"not":"a list"}}`)
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t, tt.handler, nil)
			got := repo.ListTags(context.Background())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListTags = %v, want %v", got, tt.want)
			}
		})
	}
}
