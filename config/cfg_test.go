package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"

	"divina/common"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
reader:
  loading:
    queue_mode: serial
    max_pages_after: 4
    max_pages_before: 2
  navigation:
    reading_mode: scroll
    direction: rtl
    overflow: paginated
    transition_duration: 300ms
  camera:
    max_zoom: 5
  tags:
    language: fr
    resolution: hd
logging:
  console:
    level: normal
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "test-report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Reader.Loading.Mode != common.QueueModeSerial {
		t.Errorf("QueueMode = %v, want serial", cfg.Reader.Loading.Mode)
	}
	if cfg.Reader.Loading.MaxPagesAfter != 4 {
		t.Errorf("MaxPagesAfter = %d, want 4", cfg.Reader.Loading.MaxPagesAfter)
	}
	if cfg.Reader.Navigation.ReadingMode != common.ReadingModeScroll {
		t.Errorf("ReadingMode = %v, want scroll", cfg.Reader.Navigation.ReadingMode)
	}
	if cfg.Reader.Navigation.Direction != common.ReadingDirectionRtl {
		t.Errorf("Direction = %v, want rtl", cfg.Reader.Navigation.Direction)
	}
	if cfg.Reader.Navigation.Overflow != common.OverflowPaginated {
		t.Errorf("Overflow = %v, want paginated", cfg.Reader.Navigation.Overflow)
	}
	if cfg.Reader.Navigation.TransitionDuration != 300*time.Millisecond {
		t.Errorf("TransitionDuration = %v, want 300ms", cfg.Reader.Navigation.TransitionDuration)
	}
	if cfg.Reader.Camera.MaxZoom != 5 {
		t.Errorf("MaxZoom = %f, want 5", cfg.Reader.Camera.MaxZoom)
	}
	if cfg.Reader.Tags["language"] != "fr" || cfg.Reader.Tags["resolution"] != "hd" {
		t.Errorf("Tags = %v, want language=fr resolution=hd", cfg.Reader.Tags)
	}
	// untouched values come from template
	if cfg.Reader.Camera.SnapSpeed <= 0 {
		t.Errorf("SnapSpeed = %f, want default > 0", cfg.Reader.Camera.SnapSpeed)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
reader:
  loading:
  invalid indent
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
`
	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_InvalidEnum(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "enum.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nreader:\n  loading:\n    queue_mode: sometimes\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown queue mode")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"version", "version: 2\n"},
		{"zoom below one", "version: 1\nreader:\n  camera:\n    max_zoom: 0.5\n"},
		{"ratio above one", "version: 1\nreader:\n  loading:\n    before_ratio: 1.5\n"},
		{"negative pages after", "version: 1\nreader:\n  loading:\n    max_pages_after: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Reader.Loading.Mode = common.QueueModeSerial

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Reader.Loading.Mode != common.QueueModeSerial {
		t.Errorf("QueueMode after dump/load = %v, want serial", cfg2.Reader.Loading.Mode)
	}
	if cfg2.Reader.Navigation.TransitionDuration != cfg.Reader.Navigation.TransitionDuration {
		t.Errorf("TransitionDuration after dump/load = %v, want %v", cfg2.Reader.Navigation.TransitionDuration, cfg.Reader.Navigation.TransitionDuration)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Reader.Loading.MaxPagesAfter < 1 {
		t.Errorf("MaxPagesAfter = %d, want at least 1", cfg.Reader.Loading.MaxPagesAfter)
	}
	if cfg.Reader.Images.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Reader.Images.Workers)
	}
	if cfg.Reader.Navigation.FPS != 60 {
		t.Errorf("FPS = %d, want 60", cfg.Reader.Navigation.FPS)
	}
}

func TestConfig_EmbeddedTemplateExpanded(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if bytes.Contains(data, []byte("{{")) {
		t.Errorf("Prepare() left template actions unexpanded:\n%s", data)
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Reader.Images.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want number of CPUs %d", cfg.Reader.Images.Workers, runtime.NumCPU())
	}
}

func TestLoadingConfig_Window(t *testing.T) {
	tests := []struct {
		name       string
		cfg        LoadingConfig
		wantBefore int
		wantFactor float64
	}{
		{"derived one after", LoadingConfig{MaxPagesAfter: 1, MaxPagesBefore: -1, BeforeRatio: 0.333333}, 1, 1},
		{"derived three after", LoadingConfig{MaxPagesAfter: 3, MaxPagesBefore: -1, BeforeRatio: 0.333333}, 1, 3},
		{"derived six after", LoadingConfig{MaxPagesAfter: 6, MaxPagesBefore: -1, BeforeRatio: 0.333333}, 2, 3},
		{"explicit before", LoadingConfig{MaxPagesAfter: 4, MaxPagesBefore: 2, BeforeRatio: 0.333333}, 2, 2},
		{"no before", LoadingConfig{MaxPagesAfter: 4, MaxPagesBefore: 0}, 0, 1},
		{"explicit factor", LoadingConfig{MaxPagesAfter: 4, MaxPagesBefore: 2, PriorityFactor: 1.5}, 2, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.PagesBefore(); got != tt.wantBefore {
				t.Errorf("PagesBefore() = %d, want %d", got, tt.wantBefore)
			}
			if got := tt.cfg.BeforeFactor(); got != tt.wantFactor {
				t.Errorf("BeforeFactor() = %f, want %f", got, tt.wantFactor)
			}
		})
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	partialConfig := `version: 1
reader:
  navigation:
    pagination_sticky: false
`
	if err := os.WriteFile(configPath, []byte(partialConfig), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Reader.Navigation.PaginationSticky {
		t.Error("Expected PaginationSticky to be false from config file")
	}
	if cfg.Reader.Navigation.StickyThreshold != 0.5 {
		t.Errorf("StickyThreshold = %f, want default 0.5", cfg.Reader.Navigation.StickyThreshold)
	}
}
