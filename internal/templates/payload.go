package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/progressbar/v3"

	"github.com/aiscreen-io/canvasctl/internal/api"
)

// Input carries the fields of a create or update submission. Validation
// happens upstream (internal/validation); the payload builder only
// serializes.
type Input struct {
	Name        string
	Description string
	Width       int
	Height      int

	// Objects is the serialized scene graph. A nil value is sent as an
	// empty array so the backend always receives valid JSON.
	Objects json.RawMessage

	Tags []string

	// PreviewImagePath points at a local image file to upload, or "".
	PreviewImagePath string
}

// buildMultipart serializes an Input into a multipart form. Width and
// height travel as decimal strings, objects as one JSON string field.
// The tags field is always present: repeated tags[] entries when tags
// exist, a single empty tags value otherwise, because the backend
// distinguishes "no tags" from "field missing". extra adds literal
// fields such as the _method override.
func buildMultipart(input Input, progressOut io.Writer, extra map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":   input.Name,
		"width":  strconv.Itoa(input.Width),
		"height": strconv.Itoa(input.Height),
	}
	for k, v := range extra {
		fields[k] = v
	}
	for _, k := range []string{"name", "width", "height", "_method"} {
		if v, ok := fields[k]; ok {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("failed to build form: %w", err)
			}
		}
	}

	objects := input.Objects
	if len(objects) == 0 {
		objects = json.RawMessage("[]")
	}
	if err := w.WriteField("objects", string(objects)); err != nil {
		return nil, "", fmt.Errorf("failed to build form: %w", err)
	}

	if input.Description != "" {
		if err := w.WriteField("description", input.Description); err != nil {
			return nil, "", fmt.Errorf("failed to build form: %w", err)
		}
	}

	if len(input.Tags) > 0 {
		for _, tag := range input.Tags {
			if err := w.WriteField("tags[]", tag); err != nil {
				return nil, "", fmt.Errorf("failed to build form: %w", err)
			}
		}
	} else {
		if err := w.WriteField("tags", ""); err != nil {
			return nil, "", fmt.Errorf("failed to build form: %w", err)
		}
	}

	if input.PreviewImagePath != "" {
		if err := attachPreviewImage(w, input.PreviewImagePath, progressOut); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attachPreviewImage(w *multipart.Writer, path string, progressOut io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return api.NewError(api.KindValidation, fmt.Sprintf("cannot open preview image: %v", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat preview image: %w", err)
	}

	part, err := w.CreateFormFile("preview_image", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	var src io.Reader = f
	if progressOut != nil {
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(progressOut),
			progressbar.OptionSetDescription("preview image"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		src = io.TeeReader(f, bar)
	}

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to read preview image: %w", err)
	}
	return nil
}
