package kernels

import (
	"context"
	"math"

	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// clipIterations bounds the sigma-clipping refinement per tile.
const clipIterations = 3

// BackgroundEstimate models the sky as a coarse grid of per-tile
// sigma-clipped statistics, bilinearly upsampled back to full resolution.
// It publishes the background level map and the local noise map.
func BackgroundEstimate() processor.Processor {
	return processor.Func("background_estimate", func(_ context.Context, exec *processor.Exec) error {
		src, err := grayFrame(exec, "image")
		if err != nil {
			return err
		}
		tile := int(exec.Params.IntOr("tile", 64))
		clip := exec.Params.FloatOr("clip", 3.0)
		if tile < 4 {
			return apperrors.InvalidParameter("tile", "must be at least 4")
		}
		if clip <= 0 {
			return apperrors.InvalidParameter("clip", "must be positive")
		}

		gw := (src.Width + tile - 1) / tile
		gh := (src.Height + tile - 1) / tile
		means := make([]float64, gw*gh)
		sigmas := make([]float64, gw*gh)
		samples := make([]float64, 0, tile*tile)

		for ty := 0; ty < gh; ty++ {
			for tx := 0; tx < gw; tx++ {
				samples = samples[:0]
				yEnd := min(src.Height, (ty+1)*tile)
				xEnd := min(src.Width, (tx+1)*tile)
				for y := ty * tile; y < yEnd; y++ {
					for x := tx * tile; x < xEnd; x++ {
						samples = append(samples, float64(src.Pix[y*src.Width+x]))
					}
				}
				means[ty*gw+tx], sigmas[ty*gw+tx] = clippedStats(samples, clip)
			}
		}

		bg := frame.NewGray(src.Width, src.Height)
		noise := frame.NewGray(src.Width, src.Height)
		upsample(means, gw, gh, tile, src.Width, src.Height, bg.Pix)
		upsample(sigmas, gw, gh, tile, src.Width, src.Height, noise.Pix)

		if err := exec.Set("background", bg); err != nil {
			return err
		}
		return exec.Set("noise", noise)
	})
}

// clippedStats iteratively rejects samples outside mean +/- clip*sigma and
// returns the statistics of the surviving set.
func clippedStats(samples []float64, clip float64) (mean, sigma float64) {
	mean, sigma = meanStd(samples)
	for i := 0; i < clipIterations; i++ {
		lo, hi := mean-clip*sigma, mean+clip*sigma
		var sum float64
		var n int
		for _, v := range samples {
			if v >= lo && v <= hi {
				sum += v
				n++
			}
		}
		if n == 0 {
			return mean, sigma
		}
		next := sum / float64(n)
		var sq float64
		for _, v := range samples {
			if v >= lo && v <= hi {
				d := v - next
				sq += d * d
			}
		}
		nextSigma := math.Sqrt(sq / float64(n))
		if next == mean && nextSigma == sigma {
			return mean, sigma
		}
		mean, sigma = next, nextSigma
	}
	return mean, sigma
}

// upsample bilinearly interpolates a gw x gh tile grid onto a full plane.
// Pixels beyond the outermost tile centers clamp to the edge value.
func upsample(grid []float64, gw, gh, tile, w, h int, plane []float32) {
	for y := 0; y < h; y++ {
		fy := (float64(y)+0.5)/float64(tile) - 0.5
		gy0 := int(math.Floor(fy))
		wy := fy - float64(gy0)
		gy1 := gy0 + 1
		if gy0 < 0 {
			gy0 = 0
		}
		if gy1 < 0 {
			gy1 = 0
		}
		if gy0 > gh-1 {
			gy0 = gh - 1
		}
		if gy1 > gh-1 {
			gy1 = gh - 1
		}
		for x := 0; x < w; x++ {
			fx := (float64(x)+0.5)/float64(tile) - 0.5
			gx0 := int(math.Floor(fx))
			wx := fx - float64(gx0)
			gx1 := gx0 + 1
			if gx0 < 0 {
				gx0 = 0
			}
			if gx1 < 0 {
				gx1 = 0
			}
			if gx0 > gw-1 {
				gx0 = gw - 1
			}
			if gx1 > gw-1 {
				gx1 = gw - 1
			}

			top := (1-wx)*grid[gy0*gw+gx0] + wx*grid[gy0*gw+gx1]
			bottom := (1-wx)*grid[gy1*gw+gx0] + wx*grid[gy1*gw+gx1]
			plane[y*w+x] = float32((1-wy)*top + wy*bottom)
		}
	}
}
