package kernels

import (
	"context"
	"fmt"

	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// Rec. 709 luma coefficients.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Grayscale collapses an RGB frame to a single luma plane. Mono frames pass
// through as a copy.
func Grayscale() processor.Processor {
	return processor.Func("grayscale", func(_ context.Context, exec *processor.Exec) error {
		src, err := inputFrame(exec, "image")
		if err != nil {
			return err
		}
		if src.Channels == 1 {
			return exec.Set("gray", src.Clone())
		}
		if src.Channels < 3 {
			return fmt.Errorf("grayscale needs 1 or 3 planes, got %d", src.Channels)
		}

		out := frame.NewGray(src.Width, src.Height)
		r, g, b := src.Plane(0), src.Plane(1), src.Plane(2)
		for i := range out.Pix {
			out.Pix[i] = lumaR*r[i] + lumaG*g[i] + lumaB*b[i]
		}
		return exec.Set("gray", out)
	})
}
