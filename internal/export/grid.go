package export

import (
	"image"
	"math"
)

// DefaultSpace marks an unset row or column count; the packer infers it
// from the frame count.
const DefaultSpace = 0

// Grid is a resolved spritesheet layout. Rows*Columns always covers the
// frame count it was packed for.
type Grid struct {
	Rows    int
	Columns int
}

// Pack computes the grid for frameCount frames. Unset (zero) dimensions are
// inferred: with both unset the frames get a square fit
// (columns = ceil(sqrt(n))); with one fixed, the other is derived and the
// fixed one is clamped so the sheet has no empty trailing lanes. When both
// are fixed, columns take precedence and rows are rederived.
func Pack(frameCount, rows, columns int) Grid {
	if frameCount < 1 {
		frameCount = 1
	}

	switch {
	case columns != DefaultSpace:
		columns = min(columns, frameCount)
		rows = ceilDiv(frameCount, columns)
	case rows != DefaultSpace:
		rows = min(rows, frameCount)
		columns = ceilDiv(frameCount, rows)
	default:
		columns = int(math.Ceil(math.Sqrt(float64(frameCount))))
		rows = ceilDiv(frameCount, columns)
	}

	return Grid{Rows: rows, Columns: columns}
}

// Placements returns the pixel position of each of n frames in the grid.
// Horizontal fills row-major (column increments fastest); otherwise
// column-major. cellW and cellH are the full cell size including padding.
func Placements(n int, g Grid, horizontal bool, cellW, cellH int) []image.Point {
	out := make([]image.Point, n)
	for i := 0; i < n; i++ {
		var col, row int
		if horizontal {
			col, row = i%g.Columns, i/g.Columns
		} else {
			col, row = i/g.Rows, i%g.Rows
		}
		out[i] = image.Point{X: col * cellW, Y: row * cellH}
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
