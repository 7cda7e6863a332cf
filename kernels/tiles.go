package kernels

import (
	"context"
	"fmt"

	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// TileSplit cuts a frame into a rows x cols grid of tiles. The resulting
// collection fans out when consumed individually.
func TileSplit() processor.Processor {
	return processor.Func("tile_split", func(_ context.Context, exec *processor.Exec) error {
		src, err := inputFrame(exec, "image")
		if err != nil {
			return err
		}
		rows := int(exec.Params.IntOr("rows", 2))
		cols := int(exec.Params.IntOr("cols", 2))
		if rows < 1 {
			return apperrors.InvalidParameter("rows", "must be at least 1")
		}
		if cols < 1 {
			return apperrors.InvalidParameter("cols", "must be at least 1")
		}

		tw := (src.Width + cols - 1) / cols
		th := (src.Height + rows - 1) / rows
		tiles := make(frame.Tiles, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				x0, y0 := c*tw, r*th
				sub := src.Sub(x0, y0, tw, th)
				if sub.Width == 0 || sub.Height == 0 {
					continue
				}
				tiles = append(tiles, &frame.Tile{Frame: sub, X: x0, Y: y0, Row: r, Col: c})
			}
		}
		return exec.Set("tiles", tiles)
	})
}

// tileStatsColumns is the schema TileStats emits.
var tileStatsColumns = []string{"row", "col", "x", "y", "mean", "stddev", "min", "max"}

// TileStats emits one summary row for a single tile, carrying its grid
// position so fanned-out rows can be mapped back onto the source frame.
// Plain frames are accepted and report position zero.
func TileStats() processor.Processor {
	return processor.Func("tile_stats", func(_ context.Context, exec *processor.Exec) error {
		v, ok := exec.Input("tile")
		if !ok {
			return fmt.Errorf("input %q not resolved", "tile")
		}
		var f *frame.Frame
		var x, y, row, col int
		switch t := v.(type) {
		case *frame.Tile:
			f = t.Frame
			x, y, row, col = t.X, t.Y, t.Row, t.Col
		case *frame.Frame:
			f = t
		default:
			return fmt.Errorf("input %q carries %T, want a tile or frame", "tile", v)
		}
		if len(f.Pix) == 0 {
			return fmt.Errorf("input %q is empty", "tile")
		}

		samples := make([]float64, len(f.Pix))
		lo, hi := f.Pix[0], f.Pix[0]
		for i, s := range f.Pix {
			samples[i] = float64(s)
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		mean, std := meanStd(samples)

		tbl := frame.NewTable(tileStatsColumns...)
		if err := tbl.Append(
			float64(row), float64(col), float64(x), float64(y),
			mean, std, float64(lo), float64(hi),
		); err != nil {
			return err
		}
		return exec.Set("stats", tbl)
	})
}
