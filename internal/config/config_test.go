package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aiscreen-io/canvasctl/internal/constants"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != constants.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DeleteStyle != DeleteByPath || cfg.UpdateStyle != UpdateByPut {
		t.Errorf("styles = %q/%q, want defaults", cfg.DeleteStyle, cfg.UpdateStyle)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config")

	cfg := New()
	cfg.BaseURL = "https://api.example.test"
	cfg.DeleteStyle = DeleteByBody
	cfg.UpdateStyle = UpdateByOverride

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults valid", func(c *Config) {}, nil},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, ErrMissingBaseURL},
		{"bad delete style", func(c *Config) { c.DeleteStyle = "query" }, ErrInvalidDeleteStyle},
		{"bad update style", func(c *Config) { c.UpdateStyle = "patch" }, ErrInvalidUpdateStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveBaseURLPrecedence(t *testing.T) {
	cfg := New()
	cfg.BaseURL = "https://from-file.test/"

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(constants.BaseURLEnvVar, "https://from-env.test")
		if got := cfg.ResolveBaseURL("https://from-flag.test/"); got != "https://from-flag.test" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv(constants.BaseURLEnvVar, "https://from-env.test")
		if got := cfg.ResolveBaseURL(""); got != "https://from-env.test" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("file value", func(t *testing.T) {
		if got := cfg.ResolveBaseURL(""); got != "https://from-file.test" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("default as last resort", func(t *testing.T) {
		empty := &Config{}
		if got := empty.ResolveBaseURL(""); got != constants.DefaultBaseURL {
			t.Errorf("got %q", got)
		}
	})
}
