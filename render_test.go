package chipflow

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func testRenderer() *ChipRenderer {
	return NewChipRenderer(lipgloss.NewRenderer(io.Discard))
}

func TestChipRendererMeasure(t *testing.T) {
	c := NewChip("Go")

	t.Run("bordered", func(t *testing.T) {
		s := testRenderer().Measure(c)
		if s.Width != 6 || s.Height != 3 {
			t.Errorf("expected 6x3, got %vx%v", s.Width, s.Height)
		}
	})

	t.Run("plain", func(t *testing.T) {
		s := testRenderer().Border(false).Measure(c)
		if s.Width != 4 || s.Height != 1 {
			t.Errorf("expected 4x1, got %vx%v", s.Width, s.Height)
		}
	})

	t.Run("wide runes", func(t *testing.T) {
		s := testRenderer().Border(false).Measure(NewChip("日本"))
		if s.Width != 6 {
			t.Errorf("expected 6 cells for two wide runes plus padding, got %v", s.Width)
		}
	})

	t.Run("max label", func(t *testing.T) {
		s := testRenderer().MaxLabelWidth(5).Measure(NewChip("TypeScript"))
		if s.Width != 9 {
			t.Errorf("expected label truncated to 5 cells, got width %v", s.Width)
		}
	})

	t.Run("ignores target", func(t *testing.T) {
		m := Measurer[*Chip](testRenderer())
		if m(c, 10) != m(c, 80) {
			t.Error("expected measurement independent of target width")
		}
	})
}

func TestChipRendererRenderChip(t *testing.T) {
	cr := testRenderer()

	t.Run("target width", func(t *testing.T) {
		out := cr.RenderChip(NewChip("Go"), 10.7, false)
		if w := lipgloss.Width(out); w != 10 {
			t.Errorf("expected width 10, got %d:\n%s", w, out)
		}
		if h := lipgloss.Height(out); h != 3 {
			t.Errorf("expected height 3, got %d", h)
		}
		if !strings.Contains(out, "Go") {
			t.Errorf("expected label in output:\n%s", out)
		}
	})

	t.Run("truncates", func(t *testing.T) {
		out := cr.RenderChip(NewChip("TypeScript"), 8, false)
		if w := lipgloss.Width(out); w != 8 {
			t.Errorf("expected width 8, got %d:\n%s", w, out)
		}
		if !strings.Contains(out, "Typ…") {
			t.Errorf("expected truncated label:\n%s", out)
		}
		if h := lipgloss.Height(out); h != 3 {
			t.Errorf("expected no wrapping, got height %d", h)
		}
	})

	t.Run("never below frame", func(t *testing.T) {
		out := cr.RenderChip(NewChip("Go"), 1, false)
		if w := lipgloss.Width(out); w != 4 {
			t.Errorf("expected frame width 4, got %d", w)
		}
	})

	t.Run("focus", func(t *testing.T) {
		if strings.Contains(cr.RenderChip(NewChip("Go"), 6, false), "┏") {
			t.Error("expected rounded border when not focused")
		}
		if !strings.Contains(cr.RenderChip(NewChip("Go"), 6, true), "┏") {
			t.Error("expected thick border when focused")
		}
	})
}

func TestRenderRows(t *testing.T) {
	bar := func(s string, w float64) string { return strings.Repeat(s[:1], int(w)) }

	t.Run("spacing", func(t *testing.T) {
		rows := []FlowRow[string]{{Items: []string{"a", "b"}, Widths: []float64{4, 5}}}
		out := RenderRows(rows, bar, 10, 1, AlignLeading)
		if out != "aaaa bbbbb" {
			t.Errorf("expected %q, got %q", "aaaa bbbbb", out)
		}
	})

	t.Run("alignment", func(t *testing.T) {
		rows := []FlowRow[string]{{Items: []string{"c"}, Widths: []float64{4}}}
		cases := []struct {
			align Alignment
			want  string
		}{
			{AlignLeading, "cccc      "},
			{AlignCenter, "   cccc   "},
			{AlignTrailing, "      cccc"},
		}
		for _, tc := range cases {
			if got := RenderRows(rows, bar, 10, 1, tc.align); got != tc.want {
				t.Errorf("%v: expected %q, got %q", tc.align, tc.want, got)
			}
		}
	})

	t.Run("stacks rows", func(t *testing.T) {
		rows := []FlowRow[string]{
			{Items: []string{"a"}, Widths: []float64{3}},
			{},
			{Items: []string{"b"}, Widths: []float64{3}},
		}
		out := RenderRows(rows, bar, 3, 0, AlignLeading)
		if out != "aaa\nbbb" {
			t.Errorf("expected two lines, got %q", out)
		}
	})
}

func TestRenderView(t *testing.T) {
	cr := testRenderer().Border(false)
	chips := NewObservable(
		NewChip("Go", WithID("go")),
		NewChip("Rust", WithID("rust")),
		NewChip("TypeScript", WithID("ts")),
		NewChip("C", WithID("c")),
	)
	v := NewFlexibleView(chips, ChipKey[*Chip])
	v.SetAvailableWidth(20)
	v.SetSpacing(1)

	if _, err := v.Settle(Measurer[*Chip](cr)); err != nil {
		t.Fatalf("Settle: %v", err)
	}

	out := RenderView(cr, v, "")
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d: expected flush width 20, got %d: %q", i, w, line)
		}
	}
	if !strings.Contains(lines[0], "Go") || !strings.Contains(lines[0], "Rust") {
		t.Errorf("expected Go and Rust on the first row: %q", lines[0])
	}
	if !strings.Contains(lines[1], "TypeScript") || !strings.Contains(lines[1], "C") {
		t.Errorf("expected TypeScript and C on the second row: %q", lines[1])
	}
}

func TestRenderViewClipsOversized(t *testing.T) {
	cr := testRenderer().Border(false)
	v := NewFlexibleView(NewObservable(NewChip("Supercalifragilistic")), ChipKey[*Chip])
	v.SetAvailableWidth(8)
	v.Settle(Measurer[*Chip](cr))

	out := RenderView(cr, v, "")
	if w := lipgloss.Width(out); w != 8 {
		t.Errorf("expected chip clipped to 8 cells, got %d: %q", w, out)
	}
}

func TestCellWidths(t *testing.T) {
	got := cellWidths([]float64{8.5, 10.5}, 20, 1)
	if got[0] != 9 || got[1] != 10 {
		t.Errorf("expected [9 10], got %v", got)
	}

	// rows that do not fill the container keep their floors
	got = cellWidths([]float64{22}, 8, 1)
	if got[0] != 22 {
		t.Errorf("expected [22], got %v", got)
	}

	third := 10.0 / 3
	got = cellWidths([]float64{third, third, third}, 10, 0)
	if got[0]+got[1]+got[2] != 10 {
		t.Errorf("expected widths to sum to 10, got %v", got)
	}
}
