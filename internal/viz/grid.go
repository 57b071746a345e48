package viz

import (
	"strings"

	"github.com/san-kum/spinlab/internal/lattice"
)

// RenderGrid draws a spin configuration as text, one character pair per
// cell so the torus looks roughly square in a terminal font. Up spins
// render as solid blocks, down spins as light shade.
func RenderGrid(grid [][]lattice.Spin) string {
	var b strings.Builder
	for _, row := range grid {
		for _, s := range row {
			if s > 0 {
				b.WriteString("██")
			} else {
				b.WriteString("░░")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderGridColor is RenderGrid with lipgloss colors per orientation,
// used by the live view.
func RenderGridColor(grid [][]lattice.Spin) string {
	up := spinUpStyle.Render("██")
	down := spinDownStyle.Render("░░")

	var b strings.Builder
	for _, row := range grid {
		for _, s := range row {
			if s > 0 {
				b.WriteString(up)
			} else {
				b.WriteString(down)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
