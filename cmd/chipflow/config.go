package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/kungfusheep/chipflow"
)

// DefaultConfigPath is read when -config is not given, if it exists.
const DefaultConfigPath = "chipflow.toml"

// Config represents the chipflow.toml configuration file
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Style  StyleConfig  `toml:"style"`
	Chips  []ChipConfig `toml:"chips"`
}

type LayoutConfig struct {
	// Gap between chips in a row, in cells
	Spacing int `toml:"spacing"`
	// Container width; 0 uses the terminal width
	Width int `toml:"width"`
	// Pass limit for settling measurements
	MaxPasses int `toml:"max_passes"`
	// leading, center or trailing
	Alignment string `toml:"alignment"`
}

type StyleConfig struct {
	Border          bool   `toml:"border"`
	MaxLabelWidth   int    `toml:"max_label_width"`
	Foreground      string `toml:"foreground"`
	SelectedColor   string `toml:"selected_color"`
	UnselectedColor string `toml:"unselected_color"`
}

type ChipConfig struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Selected bool   `toml:"selected"`
	// Overrides the style's selected colour for this chip
	Color string `toml:"color"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			Spacing:   1,
			MaxPasses: chipflow.DefaultMaxPasses,
			Alignment: "leading",
		},
		Style: StyleConfig{
			Border:          true,
			MaxLabelWidth:   24,
			Foreground:      "#FFFFFF",
			SelectedColor:   "#5A56E0",
			UnselectedColor: "#3A3A3C",
		},
		Chips: []ChipConfig{
			{Name: "Go", Selected: true, Color: "#00ADD8"},
			{Name: "Rust"},
			{Name: "TypeScript"},
			{Name: "Zig"},
			{Name: "Haskell"},
			{Name: "C"},
			{Name: "Elixir"},
			{Name: "Swift"},
			{Name: "Kotlin"},
			{Name: "OCaml"},
			{Name: "Python"},
			{Name: "Lua"},
		},
	}
}

// LoadConfig loads the configuration from path. An empty path reads
// chipflow.toml if it exists; a missing default file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// a file that lists chips replaces the defaults rather than appending
	config.Chips = nil
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(config.Chips) == 0 {
		config.Chips = DefaultConfig().Chips
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid %s: %w", path, err)
	}
	return config, nil
}

// Validate checks values the layout would reject.
func (c Config) Validate() error {
	if c.Layout.Spacing < 0 {
		return fmt.Errorf("layout.spacing must not be negative, got %d", c.Layout.Spacing)
	}
	if c.Layout.Width < 0 {
		return fmt.Errorf("layout.width must not be negative, got %d", c.Layout.Width)
	}
	if _, err := parseAlignment(c.Layout.Alignment); err != nil {
		return err
	}
	for i, chip := range c.Chips {
		if strings.TrimSpace(chip.Name) == "" {
			return fmt.Errorf("chips[%d] has no name", i)
		}
	}
	return nil
}

// Alignment returns the configured row alignment.
func (c Config) Alignment() chipflow.Alignment {
	a, _ := parseAlignment(c.Layout.Alignment)
	return a
}

func parseAlignment(s string) (chipflow.Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leading", "left":
		return chipflow.AlignLeading, nil
	case "center", "centre":
		return chipflow.AlignCenter, nil
	case "trailing", "right":
		return chipflow.AlignTrailing, nil
	}
	return chipflow.AlignLeading, fmt.Errorf("unknown layout.alignment %q", s)
}

// NewChips builds the configured chips in file order.
func (c Config) NewChips() []*chipflow.Chip {
	chips := make([]*chipflow.Chip, 0, len(c.Chips))
	for _, cc := range c.Chips {
		color := c.Style.SelectedColor
		if cc.Color != "" {
			color = cc.Color
		}
		opts := []chipflow.ChipOption{
			chipflow.WithSelected(cc.Selected),
			chipflow.WithColor(lipgloss.Color(color)),
			chipflow.WithUnselectedColor(lipgloss.Color(c.Style.UnselectedColor)),
		}
		if cc.ID != "" {
			opts = append(opts, chipflow.WithID(cc.ID))
		}
		chips = append(chips, chipflow.NewChip(cc.Name, opts...))
	}
	return chips
}

// NewRenderer builds a chip renderer from the style section.
func (c Config) NewRenderer(r *lipgloss.Renderer) *chipflow.ChipRenderer {
	return chipflow.NewChipRenderer(r).
		Border(c.Style.Border).
		MaxLabelWidth(c.Style.MaxLabelWidth).
		Foreground(lipgloss.Color(c.Style.Foreground))
}
