package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", []byte(`
format: yaml
strict: true
max_image_size: 4096
log_level: debug
server_address: 0.0.0.0:9000
`))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", cfg.Format)
	}
	if cfg.Strict == nil || !*cfg.Strict {
		t.Errorf("Strict = %v, want true", cfg.Strict)
	}
	if cfg.Bounded != nil {
		t.Errorf("Bounded = %v, want unset", *cfg.Bounded)
	}
	if cfg.MaxImageSize == nil || *cfg.MaxImageSize != 4096 {
		t.Errorf("MaxImageSize = %v, want 4096", cfg.MaxImageSize)
	}
	if cfg.LogLevel != "debug" || cfg.ServerAddress != "0.0.0.0:9000" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "missing.yaml"), "failed to read config"},
		{"invalid yaml", writeFile(t, "bad.yaml", []byte("strict: [\n")), "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConfigSizeLimit(t *testing.T) {
	image := writeFile(t, "nvram.bin", skiboot)

	if _, err := runApp(t, "max_image_size: 8\n", "inspect", image); err == nil || !strings.Contains(err.Error(), "size limit") {
		t.Fatalf("error = %v, want size limit", err)
	}
	if _, err := runApp(t, "max_image_size: 8\n", "inspect", "--max-image-size", "0", image); err != nil {
		t.Fatalf("explicit flag should override config: %v", err)
	}
}

func TestRejectsMissingConfig(t *testing.T) {
	app := newApp()
	err := app.Run(t.Context(), []string{"ofnvram", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version"})
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Fatalf("error = %v, want config read failure", err)
	}
}
