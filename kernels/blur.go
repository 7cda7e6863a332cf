package kernels

import (
	"context"
	"math"

	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// GaussianBlur smooths each plane with a separable gaussian. The kernel
// radius is derived from sigma (3 sigma, at least 1); edges replicate the
// border sample.
func GaussianBlur() processor.Processor {
	return processor.Func("gaussian_blur", func(_ context.Context, exec *processor.Exec) error {
		src, err := inputFrame(exec, "image")
		if err != nil {
			return err
		}
		sigma := exec.Params.FloatOr("sigma", 1.5)
		if sigma <= 0 {
			return apperrors.InvalidParameter("sigma", "must be positive")
		}

		k := gaussKernel(sigma)
		out := frame.New(src.Width, src.Height, src.Channels)
		tmp := make([]float32, src.Width*src.Height)
		for c := 0; c < src.Channels; c++ {
			blurPlane(src.Plane(c), out.Plane(c), tmp, src.Width, src.Height, k)
		}
		return exec.Set("blurred", out)
	})
}

// gaussKernel builds a normalized 1D gaussian of radius ceil(3 sigma).
func gaussKernel(sigma float64) []float32 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	k := make([]float32, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range k {
		k[i] *= inv
	}
	return k
}

// blurPlane runs the horizontal pass into tmp and the vertical pass into dst.
func blurPlane(src, dst, tmp []float32, w, h int, k []float32) {
	radius := len(k) / 2
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var acc float32
			for d := -radius; d <= radius; d++ {
				sx := x + d
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				acc += k[d+radius] * row[sx]
			}
			tmp[y*w+x] = acc
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for d := -radius; d <= radius; d++ {
				sy := y + d
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				acc += k[d+radius] * tmp[sy*w+x]
			}
			dst[y*w+x] = acc
		}
	}
}
