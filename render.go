package chipflow

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ChipRenderer draws chips as lipgloss blocks and measures them in
// terminal cells. It is the host side of a FlexibleView: Measure feeds the
// size cache, RenderChip consumes the target widths.
type ChipRenderer struct {
	r        *lipgloss.Renderer
	fg       lipgloss.TerminalColor
	border   bool
	maxLabel int
}

// NewChipRenderer creates a renderer. A nil lipgloss renderer means the
// default one, bound to stdout.
func NewChipRenderer(r *lipgloss.Renderer) *ChipRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ChipRenderer{
		r:      r,
		fg:     lipgloss.Color("#FFFFFF"),
		border: true,
	}
}

// Border toggles the rounded chip outline. Bordered chips are three rows tall.
func (cr *ChipRenderer) Border(on bool) *ChipRenderer {
	cr.border = on
	return cr
}

// MaxLabelWidth truncates longer labels with an ellipsis. 0 means no limit.
func (cr *ChipRenderer) MaxLabelWidth(cells int) *ChipRenderer {
	cr.maxLabel = max(cells, 0)
	return cr
}

// Foreground sets the label colour.
func (cr *ChipRenderer) Foreground(c lipgloss.TerminalColor) *ChipRenderer {
	cr.fg = c
	return cr
}

func (cr *ChipRenderer) style(c ChipItem, focused bool) lipgloss.Style {
	s := cr.r.NewStyle().
		Padding(0, 1).
		Foreground(cr.fg).
		Background(c.BackgroundColor())
	if focused {
		s = s.Bold(true).Underline(true)
	}
	if cr.border {
		b := lipgloss.RoundedBorder()
		if focused {
			b = lipgloss.ThickBorder()
		}
		s = s.Border(b).BorderForeground(c.BackgroundColor())
	}
	return s
}

func (cr *ChipRenderer) label(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	if cr.maxLabel > 0 && runewidth.StringWidth(name) > cr.maxLabel {
		name = runewidth.Truncate(name, cr.maxLabel, "…")
	}
	return name
}

// Measure returns the intrinsic size of c: its label plus padding and border.
// It does not depend on any width c has been given.
func (cr *ChipRenderer) Measure(c ChipItem) Size {
	s := cr.style(c, false)
	return Size{
		Width:  float64(runewidth.StringWidth(cr.label(c.Name())) + s.GetHorizontalFrameSize()),
		Height: float64(1 + s.GetVerticalFrameSize()),
	}
}

// RenderChip renders c exactly width cells wide (rounded down), never
// narrower than its padding and border. Labels that do not fit are
// truncated.
func (cr *ChipRenderer) RenderChip(c ChipItem, width float64, focused bool) string {
	s := cr.style(c, focused)
	frame := s.GetHorizontalFrameSize()
	cells := max(int(math.Floor(width)), frame)

	label := cr.label(c.Name())
	space := cells - frame
	if runewidth.StringWidth(label) > space {
		if space < 1 {
			label = ""
		} else {
			label = runewidth.Truncate(label, space, "…")
		}
	}

	// lipgloss widths include padding but not the border
	return s.Width(cells - s.GetHorizontalBorderSize()).
		Align(lipgloss.Center).
		Render(label)
}

// Measurer adapts cr to the measure func FlexibleView.Settle expects.
func Measurer[T ChipItem](cr *ChipRenderer) func(T, float64) Size {
	return func(c T, _ float64) Size {
		return cr.Measure(c)
	}
}

// RenderRows joins the cells of each row with spacing columns between them,
// aligns each row within width and stacks the rows.
func RenderRows[T any](rows []FlowRow[T], cell func(item T, width float64) string, width, spacing int, align Alignment) string {
	gap := strings.Repeat(" ", max(spacing, 0))
	lines := make([]string, 0, len(rows))

	for _, row := range rows {
		if len(row.Items) == 0 {
			continue
		}
		parts := make([]string, 0, 2*len(row.Items)-1)
		for i, item := range row.Items {
			if i > 0 && spacing > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, cell(item, row.Widths[i]))
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		if width > 0 && lipgloss.Width(line) < width {
			line = lipgloss.PlaceHorizontal(width, align.position(), line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderView renders the current rows of v with cr. The chip whose id is
// focus is highlighted. Chips wider than the container are clipped to it.
func RenderView[T ChipItem, K comparable](cr *ChipRenderer, v *FlexibleView[T, K], focus string) string {
	width := int(v.AvailableWidth())
	spacing := int(v.Spacing())

	rows := v.Rows()
	for i := range rows {
		rows[i].Widths = cellWidths(rows[i].Widths, width, spacing)
	}

	return RenderRows(rows, func(c T, w float64) string {
		return cr.RenderChip(c, math.Min(w, float64(width)), c.ID() == focus)
	}, width, spacing, v.GetAlignment())
}

// cellWidths rounds target widths down to whole cells. When the targets
// fill the row exactly, the cells lost to rounding are handed back one at a
// time from the left so the row stays flush with both edges.
func cellWidths(targets []float64, available, spacing int) []float64 {
	out := make([]float64, len(targets))
	var sum float64
	used := 0
	for i, t := range targets {
		out[i] = math.Floor(t)
		sum += t
		used += int(out[i])
	}

	gaps := spacing * max(len(targets)-1, 0)
	if math.Abs(sum+float64(gaps)-float64(available)) > 1e-6 {
		return out
	}
	for i := 0; used+gaps < available && len(out) > 0; i = (i + 1) % len(out) {
		out[i]++
		used++
	}
	return out
}

func (a Alignment) position() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignTrailing:
		return lipgloss.Right
	}
	return lipgloss.Left
}
