package export

import (
	"image"
	"math"
	"testing"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name       string
		frames     int
		rows, cols int
		want       Grid
	}{
		{"single frame", 1, 0, 0, Grid{Rows: 1, Columns: 1}},
		{"perfect square", 9, 0, 0, Grid{Rows: 3, Columns: 3}},
		{"square fit overallocates", 10, 0, 0, Grid{Rows: 3, Columns: 4}},
		{"two frames", 2, 0, 0, Grid{Rows: 1, Columns: 2}},
		{"fixed columns", 10, 0, 4, Grid{Rows: 3, Columns: 4}},
		{"fixed columns uneven", 7, 0, 2, Grid{Rows: 4, Columns: 2}},
		{"fixed rows", 7, 2, 0, Grid{Rows: 2, Columns: 4}},
		{"columns clamped to frame count", 3, 0, 10, Grid{Rows: 1, Columns: 3}},
		{"rows clamped to frame count", 3, 10, 0, Grid{Rows: 3, Columns: 1}},
		{"columns win when both fixed", 10, 5, 4, Grid{Rows: 3, Columns: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(tt.frames, tt.rows, tt.cols)
			if got != tt.want {
				t.Errorf("Pack(%d, %d, %d) = %+v, want %+v",
					tt.frames, tt.rows, tt.cols, got, tt.want)
			}
		})
	}
}

func TestPackCoversAllFrames(t *testing.T) {
	for n := 1; n <= 100; n++ {
		g := Pack(n, 0, 0)
		if g.Rows*g.Columns < n {
			t.Errorf("Pack(%d, 0, 0) = %+v cannot hold all frames", n, g)
		}

		wantCols := int(math.Ceil(math.Sqrt(float64(n))))
		if g.Columns != wantCols {
			t.Errorf("Pack(%d, 0, 0) columns = %d, want %d", n, g.Columns, wantCols)
		}
		// Square fit: rows never differ from columns by more than one row
		// of rounding slack.
		if g.Columns-g.Rows > 1 || g.Rows > g.Columns {
			t.Errorf("Pack(%d, 0, 0) = %+v is not a square fit", n, g)
		}

		for c := 1; c <= 12; c++ {
			gc := Pack(n, 0, c)
			wantRows := (n + min(c, n) - 1) / min(c, n)
			if gc.Rows != wantRows {
				t.Errorf("Pack(%d, 0, %d) rows = %d, want %d", n, c, gc.Rows, wantRows)
			}
			if gc.Rows*gc.Columns < n {
				t.Errorf("Pack(%d, 0, %d) = %+v cannot hold all frames", n, c, gc)
			}
		}
	}
}

func TestPlacementsHorizontal(t *testing.T) {
	g := Grid{Rows: 3, Columns: 4}
	places := Placements(10, g, true, 16, 20)

	for i, p := range places {
		want := image.Point{X: (i % 4) * 16, Y: (i / 4) * 20}
		if p != want {
			t.Errorf("frame %d placed at %v, want %v", i, p, want)
		}
	}
}

func TestPlacementsVertical(t *testing.T) {
	g := Grid{Rows: 3, Columns: 4}
	places := Placements(10, g, false, 16, 20)

	for i, p := range places {
		want := image.Point{X: (i / 3) * 16, Y: (i % 3) * 20}
		if p != want {
			t.Errorf("frame %d placed at %v, want %v", i, p, want)
		}
	}
}

func TestPlacementsIdempotent(t *testing.T) {
	g := Pack(10, 0, 0)
	first := Placements(10, g, true, 8, 8)
	second := Placements(10, g, true, 8, 8)

	if len(first) != len(second) {
		t.Fatalf("placement counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("frame %d placement differs: %v vs %v", i, first[i], second[i])
		}
	}
}
