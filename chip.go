package chipflow

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// ChipItem is anything that can be shown and selected as a chip.
type ChipItem interface {
	ID() string
	Name() string
	IsSelected() bool
	SetSelected(selected bool)
	BackgroundColor() lipgloss.TerminalColor
}

// Default chip colours.
var (
	DefaultChipColor       = lipgloss.Color("#8E8E93")
	DefaultUnselectedColor = lipgloss.Color("#3A3A3C")
)

// Chip is a named, selectable tag.
type Chip struct {
	id         string
	name       string
	selected   bool
	color      lipgloss.TerminalColor
	unselected lipgloss.TerminalColor
}

// ChipOption configures a Chip in NewChip.
type ChipOption func(*Chip)

// WithID sets the chip id instead of generating one.
func WithID(id string) ChipOption {
	return func(c *Chip) { c.id = id }
}

// WithSelected sets the initial selection state.
func WithSelected(selected bool) ChipOption {
	return func(c *Chip) { c.selected = selected }
}

// WithColor sets the background used while the chip is selected.
func WithColor(color lipgloss.TerminalColor) ChipOption {
	return func(c *Chip) { c.color = color }
}

// WithUnselectedColor sets the background used while the chip is not selected.
func WithUnselectedColor(color lipgloss.TerminalColor) ChipOption {
	return func(c *Chip) { c.unselected = color }
}

// NewChip creates a chip with a random UUID id, grey and unselected unless
// options say otherwise.
func NewChip(name string, opts ...ChipOption) *Chip {
	c := &Chip{
		name:       name,
		color:      DefaultChipColor,
		unselected: DefaultUnselectedColor,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	return c
}

func (c *Chip) ID() string { return c.id }
func (c *Chip) Name() string { return c.name }
func (c *Chip) IsSelected() bool { return c.selected }
func (c *Chip) String() string { return c.name }

// Color returns the selected background colour.
func (c *Chip) Color() lipgloss.TerminalColor { return c.color }

// SetSelected implements ChipItem.
func (c *Chip) SetSelected(selected bool) { c.selected = selected }

// Toggle flips the selection state and returns the new one.
func (c *Chip) Toggle() bool {
	c.selected = !c.selected
	return c.selected
}

// Rename changes the display name. The chip keeps its id, so any cached
// measurement stays keyed to it until the host measures again.
func (c *Chip) Rename(name string) { c.name = name }

// BackgroundColor is the chip colour when selected and the unselected colour
// otherwise.
func (c *Chip) BackgroundColor() lipgloss.TerminalColor {
	if c.selected {
		return c.color
	}
	return c.unselected
}

// ChipKey is the FlexibleView key func for chips.
func ChipKey[T ChipItem](c T) string {
	return c.ID()
}
