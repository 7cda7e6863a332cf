package kernels

import (
	"testing"

	"github.com/asterion-dev/pipekit/data"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/param"
)

func rampFrame(w, h int) *frame.Frame {
	f := frame.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, 0, float32(y*w+x))
		}
	}
	return f
}

func TestTileSplit_EvenGrid(t *testing.T) {
	src := rampFrame(4, 4)

	exec := runKernel(t, TileSplit(), nil, map[string]any{"image": src}, "tiles")
	v, _ := exec.Output("tiles")
	tiles, ok := v.(frame.Tiles)
	if !ok {
		t.Fatalf("expected frame.Tiles, got %T", v)
	}
	if data.TypeOf(tiles) != data.TypeFrameCollection {
		t.Fatal("expected the tiles to type as a frame collection")
	}
	if len(tiles) != 4 {
		t.Fatalf("expected 4 tiles, got %d", len(tiles))
	}

	second := tiles[1]
	if second.Row != 0 || second.Col != 1 || second.X != 2 || second.Y != 0 {
		t.Fatalf("unexpected tile geometry: %+v", second)
	}
	if got := second.At(0, 0, 0); got != 2 {
		t.Fatalf("expected the tile cut at x=2, got sample %v", got)
	}
}

func TestTileSplit_UnevenGrid(t *testing.T) {
	src := rampFrame(5, 4)

	exec := runKernel(t, TileSplit(), nil, map[string]any{"image": src}, "tiles")
	v, _ := exec.Output("tiles")
	tiles := v.(frame.Tiles)

	if len(tiles) != 4 {
		t.Fatalf("expected 4 tiles, got %d", len(tiles))
	}
	if tiles[0].Width != 3 || tiles[1].Width != 2 {
		t.Fatalf("expected widths 3 and 2, got %d and %d", tiles[0].Width, tiles[1].Width)
	}
}

func TestTileSplit_GridParams(t *testing.T) {
	src := rampFrame(6, 3)

	exec := runKernel(t, TileSplit(),
		param.Map{"rows": param.Int(1), "cols": param.Int(3)},
		map[string]any{"image": src}, "tiles")
	v, _ := exec.Output("tiles")
	tiles := v.(frame.Tiles)

	if len(tiles) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(tiles))
	}
	for i, tile := range tiles {
		if tile.Width != 2 || tile.Height != 3 {
			t.Fatalf("expected 2x3 tiles, tile %d is %dx%d", i, tile.Width, tile.Height)
		}
	}
}

func TestTileStats_CarriesTileGeometry(t *testing.T) {
	tile := &frame.Tile{Frame: frame.NewGray(2, 2), X: 4, Y: 2, Row: 1, Col: 2}
	for i, v := range []float32{1, 2, 3, 4} {
		tile.Pix[i] = v
	}

	exec := runKernel(t, TileStats(), nil, map[string]any{"tile": tile}, "stats")
	tbl := outputTable(t, exec, "stats")

	if tbl.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.NumRows())
	}
	if v, _ := tbl.Value(0, "mean"); v != 2.5 {
		t.Fatalf("expected mean 2.5, got %v", v)
	}
	if v, _ := tbl.Value(0, "stddev"); !near(v, 1.118033988749895, 1e-9) {
		t.Fatalf("expected stddev ~1.118, got %v", v)
	}
	if v, _ := tbl.Value(0, "min"); v != 1 {
		t.Fatalf("expected min 1, got %v", v)
	}
	if v, _ := tbl.Value(0, "max"); v != 4 {
		t.Fatalf("expected max 4, got %v", v)
	}
	if v, _ := tbl.Value(0, "row"); v != 1 {
		t.Fatalf("expected row 1, got %v", v)
	}
	if v, _ := tbl.Value(0, "x"); v != 4 {
		t.Fatalf("expected x 4, got %v", v)
	}
}

func TestTileStats_PlainFrame(t *testing.T) {
	f := flatFrame(2, 1, 7)

	exec := runKernel(t, TileStats(), nil, map[string]any{"tile": f}, "stats")
	tbl := outputTable(t, exec, "stats")

	if v, _ := tbl.Value(0, "mean"); v != 7 {
		t.Fatalf("expected mean 7, got %v", v)
	}
	if v, _ := tbl.Value(0, "row"); v != 0 {
		t.Fatalf("expected row 0 for a plain frame, got %v", v)
	}
}
