package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateTemplateForm(t *testing.T) {
	valid := TemplateForm{Name: "Banner", Width: 800, Height: 600}

	tests := []struct {
		name       string
		mutate     func(*TemplateForm)
		wantValid  bool
		wantFields []string
	}{
		{
			name:      "valid form",
			mutate:    func(f *TemplateForm) {},
			wantValid: true,
		},
		{
			name:       "name too short",
			mutate:     func(f *TemplateForm) { f.Name = "ab" },
			wantFields: []string{"name"},
		},
		{
			name:      "name at minimum length",
			mutate:    func(f *TemplateForm) { f.Name = "abc" },
			wantValid: true,
		},
		{
			name:       "name too long",
			mutate:     func(f *TemplateForm) { f.Name = strings.Repeat("x", 101) },
			wantFields: []string{"name"},
		},
		{
			name:      "name at maximum length",
			mutate:    func(f *TemplateForm) { f.Name = strings.Repeat("x", 100) },
			wantValid: true,
		},
		{
			name:       "missing name",
			mutate:     func(f *TemplateForm) { f.Name = "   " },
			wantFields: []string{"name"},
		},
		{
			name:       "description too long",
			mutate:     func(f *TemplateForm) { f.Description = strings.Repeat("d", 501) },
			wantFields: []string{"description"},
		},
		{
			name:      "description at limit",
			mutate:    func(f *TemplateForm) { f.Description = strings.Repeat("d", 500) },
			wantValid: true,
		},
		{
			name:       "zero width",
			mutate:     func(f *TemplateForm) { f.Width = 0 },
			wantFields: []string{"width"},
		},
		{
			name:       "negative height",
			mutate:     func(f *TemplateForm) { f.Height = -1 },
			wantFields: []string{"height"},
		},
		{
			name:       "oversized dimensions",
			mutate:     func(f *TemplateForm) { f.Width = 10001; f.Height = 99999 },
			wantFields: []string{"width", "height"},
		},
		{
			name:      "dimensions at limit",
			mutate:    func(f *TemplateForm) { f.Width = 10000; f.Height = 10000 },
			wantValid: true,
		},
		{
			name:      "ten tags of max length",
			mutate:    func(f *TemplateForm) { f.Tags = repeatTags(10, 50) },
			wantValid: true,
		},
		{
			name:       "eleven tags",
			mutate:     func(f *TemplateForm) { f.Tags = repeatTags(11, 3) },
			wantFields: []string{"tags"},
		},
		{
			name:       "tag too long",
			mutate:     func(f *TemplateForm) { f.Tags = []string{strings.Repeat("t", 51)} },
			wantFields: []string{"tags"},
		},
		{
			name:       "blank tag",
			mutate:     func(f *TemplateForm) { f.Tags = []string{"ok", " "} },
			wantFields: []string{"tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			result := ValidateTemplateForm(form)

			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, errors = %v", result.IsValid, result.Errors)
			}
			for _, field := range tt.wantFields {
				if result.Errors[field] == "" {
					t.Errorf("expected error for field %q, got %v", field, result.Errors)
				}
			}
		})
	}
}

func repeatTags(n, length int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = strings.Repeat(string(rune('a'+i%26)), length)
	}
	return tags
}

func TestValidateLoginForm(t *testing.T) {
	tests := []struct {
		name       string
		form       LoginForm
		wantValid  bool
		wantFields []string
	}{
		{
			name:      "valid",
			form:      LoginForm{Email: "user@example.com", Password: "secret"},
			wantValid: true,
		},
		{
			name:       "empty form",
			form:       LoginForm{},
			wantFields: []string{"email", "password"},
		},
		{
			name:       "malformed email",
			form:       LoginForm{Email: "not-an-email", Password: "secret"},
			wantFields: []string{"email"},
		},
		{
			name:       "email with spaces",
			form:       LoginForm{Email: "a b@example.com", Password: "secret"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			form:       LoginForm{Email: "user@example.com", Password: "12345"},
			wantFields: []string{"password"},
		},
		{
			name:      "password at minimum",
			form:      LoginForm{Email: "user@example.com", Password: "123456"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateLoginForm(tt.form)
			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, errors = %v", result.IsValid, result.Errors)
			}
			for _, field := range tt.wantFields {
				if result.Errors[field] == "" {
					t.Errorf("expected error for field %q, got %v", field, result.Errors)
				}
			}
		})
	}
}

func TestValidateImageFile(t *testing.T) {
	dir := t.TempDir()

	smallPNG := filepath.Join(dir, "ok.png")
	if err := os.WriteFile(smallPNG, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	wrongType := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(wrongType, []byte("pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	if result := ValidateImageFile(""); !result.IsValid {
		t.Errorf("empty path should be valid, got %v", result.Errors)
	}
	if result := ValidateImageFile(smallPNG); !result.IsValid {
		t.Errorf("small png should be valid, got %v", result.Errors)
	}
	if result := ValidateImageFile(wrongType); result.IsValid {
		t.Error("pdf should be rejected")
	}
	if result := ValidateImageFile(filepath.Join(dir, "missing.png")); result.IsValid {
		t.Error("missing file should be rejected")
	}
}
