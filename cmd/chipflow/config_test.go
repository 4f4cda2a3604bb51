package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/chipflow"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chipflow.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// run somewhere without a chipflow.toml
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.Layout != def.Layout || cfg.Style != def.Style || len(cfg.Chips) != len(def.Chips) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[layout]
spacing = 2
width = 60
alignment = "center"

[style]
border = false
selected_color = "#112233"

[[chips]]
id = "go"
name = "Go"
selected = true
color = "#00ADD8"

[[chips]]
name = "Rust"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Layout.Spacing != 2 || cfg.Layout.Width != 60 {
		t.Errorf("expected spacing 2 width 60, got %+v", cfg.Layout)
	}
	if cfg.Alignment() != chipflow.AlignCenter {
		t.Errorf("expected center alignment, got %v", cfg.Alignment())
	}
	if cfg.Layout.MaxPasses != chipflow.DefaultMaxPasses {
		t.Errorf("expected unset max_passes to keep its default, got %d", cfg.Layout.MaxPasses)
	}
	if cfg.Style.Border {
		t.Error("expected border disabled")
	}
	if cfg.Style.UnselectedColor != DefaultConfig().Style.UnselectedColor {
		t.Errorf("expected default unselected colour, got %q", cfg.Style.UnselectedColor)
	}

	chips := cfg.NewChips()
	if len(chips) != 2 {
		t.Fatalf("expected file chips to replace defaults, got %d", len(chips))
	}
	if chips[0].ID() != "go" || !chips[0].IsSelected() {
		t.Errorf("expected selected chip with id go, got %q selected=%v", chips[0].ID(), chips[0].IsSelected())
	}
	if chips[0].Color() != lipgloss.Color("#00ADD8") {
		t.Errorf("expected per-chip colour, got %v", chips[0].Color())
	}
	if chips[1].Color() != lipgloss.Color("#112233") {
		t.Errorf("expected style colour for Rust, got %v", chips[1].Color())
	}
	if chips[1].ID() == "" {
		t.Error("expected generated id")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[layout\n", "failed to parse"},
		{"negative spacing", "[layout]\nspacing = -1\n", "spacing"},
		{"negative width", "[layout]\nwidth = -3\n", "width"},
		{"alignment", "[layout]\nalignment = \"diagonal\"\n", "alignment"},
		{"unnamed chip", "[[chips]]\nname = \" \"\n", "no name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseAlignment(t *testing.T) {
	cases := map[string]chipflow.Alignment{
		"":         chipflow.AlignLeading,
		"Left":     chipflow.AlignLeading,
		"centre":   chipflow.AlignCenter,
		"trailing": chipflow.AlignTrailing,
		" right ":  chipflow.AlignTrailing,
	}
	for in, want := range cases {
		got, err := parseAlignment(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %v, got %v (%v)", in, want, got, err)
		}
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := LoadConfig("chipflow.example.toml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Chips) != 6 {
		t.Errorf("expected 6 chips, got %d", len(cfg.Chips))
	}
	if _, err := newModel(cfg, lipgloss.NewRenderer(io.Discard), 40); err != nil {
		t.Errorf("newModel: %v", err)
	}
}
