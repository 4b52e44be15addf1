// Package validation holds the pure form validators. Every validator is
// total: bad input produces a field-keyed error map, never a panic or an
// error return, so callers can always render the result directly.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aiscreen-io/canvasctl/internal/constants"
)

// Result is a validation outcome: either valid, or a message per failing
// field.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

func newResult() Result {
	return Result{IsValid: true, Errors: map[string]string{}}
}

func (r *Result) fail(field, message string) {
	r.IsValid = false
	r.Errors[field] = message
}

// TemplateForm carries the user-editable template fields for validation.
type TemplateForm struct {
	Name        string
	Description string
	Width       int
	Height      int
	Tags        []string
}

// LoginForm carries the login fields for validation.
type LoginForm struct {
	Email    string
	Password string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateTemplateForm checks a template submission against the field
// bounds the backend enforces, so mistakes surface before any request is
// sent.
func ValidateTemplateForm(form TemplateForm) Result {
	result := newResult()

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		result.fail("name", "name is required")
	case len(name) < constants.NameMinLength:
		result.fail("name", fmt.Sprintf("name must be at least %d characters", constants.NameMinLength))
	case len(name) > constants.NameMaxLength:
		result.fail("name", fmt.Sprintf("name must be at most %d characters", constants.NameMaxLength))
	}

	if len(form.Description) > constants.DescriptionMaxLength {
		result.fail("description", fmt.Sprintf("description must be at most %d characters", constants.DescriptionMaxLength))
	}

	validateDimension(&result, "width", form.Width)
	validateDimension(&result, "height", form.Height)

	if len(form.Tags) > constants.MaxTags {
		result.fail("tags", fmt.Sprintf("at most %d tags are allowed", constants.MaxTags))
	} else {
		for _, tag := range form.Tags {
			if strings.TrimSpace(tag) == "" || len(tag) > constants.TagMaxLength {
				result.fail("tags", fmt.Sprintf("each tag must be a non-empty string of at most %d characters", constants.TagMaxLength))
				break
			}
		}
	}

	return result
}

func validateDimension(result *Result, field string, value int) {
	switch {
	case value <= 0:
		result.fail(field, field+" must be a positive number")
	case value > constants.DimensionMax:
		result.fail(field, fmt.Sprintf("%s must be at most %d pixels", field, constants.DimensionMax))
	}
}

// ValidateLoginForm checks login credentials for shape, not correctness.
func ValidateLoginForm(form LoginForm) Result {
	result := newResult()

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		result.fail("email", "email is required")
	case !IsValidEmail(email):
		result.fail("email", "enter a valid email address")
	}

	switch {
	case strings.TrimSpace(form.Password) == "":
		result.fail("password", "password is required")
	case len(form.Password) < constants.PasswordMinLength:
		result.fail("password", fmt.Sprintf("password must be at least %d characters", constants.PasswordMinLength))
	}

	return result
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageFile checks a local preview-image candidate: supported
// format and size within the upload limit. An empty path is valid, since
// the preview image is optional.
func ValidateImageFile(path string) Result {
	result := newResult()
	if path == "" {
		return result
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !allowedImageExtensions[ext] {
		result.fail("preview_image", "only JPEG, PNG, GIF and WebP images are supported")
	}

	info, err := os.Stat(path)
	if err != nil {
		result.fail("preview_image", "preview image file cannot be read")
		return result
	}
	if info.Size() > constants.PreviewImageMaxSize {
		result.fail("preview_image", fmt.Sprintf("preview image must be at most %d MB", constants.PreviewImageMaxSize/(1024*1024)))
	}

	return result
}
