package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTemplateUnmarshalToleratesMixedTypes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Template
	}{
		{
			name: "numeric id and dimensions",
			in:   `{"id":7,"name":"A","width":800,"height":600}`,
			want: Template{ID: "7", Name: "A", Width: 800, Height: 600},
		},
		{
			name: "string id and dimensions",
			in:   `{"id":"7","name":"A","width":"800","height":"600"}`,
			want: Template{ID: "7", Name: "A", Width: 800, Height: 600},
		},
		{
			name: "null fields",
			in:   `{"id":null,"name":"A","width":null,"height":null,"tags":null}`,
			want: Template{Name: "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Template
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplateObjectsRoundTripLosslessly(t *testing.T) {
	in := `{"id":1,"name":"A","objects":[{"type":"rect","meta":{"deep":[1,2,{"x":null}]}}]}`

	var tpl Template
	if err := json.Unmarshal([]byte(in), &tpl); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	var a, b interface{}
	if err := json.Unmarshal(tpl.Objects, &a); err != nil {
		t.Fatalf("objects not valid JSON: %v", err)
	}
	json.Unmarshal([]byte(`[{"type":"rect","meta":{"deep":[1,2,{"x":null}]}}]`), &b)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("objects mutated: %s", tpl.Objects)
	}
}

func TestTemplateUnmarshalDropsGarbageDimensions(t *testing.T) {
	// Non-numeric dimension strings collapse to zero; validation upstream
	// rejects them before any submission.
	var tpl Template
	if err := json.Unmarshal([]byte(`{"id":1,"width":"wide"}`), &tpl); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if tpl.Width != 0 {
		t.Errorf("Width = %d, want 0", tpl.Width)
	}
}
