package kernels

import (
	"context"
	"fmt"

	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// Threshold produces a binary detection mask: a pixel is set when it rises
// more than k local noise deviations above the background.
func Threshold() processor.Processor {
	return processor.Func("threshold", func(_ context.Context, exec *processor.Exec) error {
		img, err := grayFrame(exec, "image")
		if err != nil {
			return err
		}
		bg, err := grayFrame(exec, "background")
		if err != nil {
			return err
		}
		noise, err := grayFrame(exec, "noise")
		if err != nil {
			return err
		}
		if !sameGeometry(img, bg) || !sameGeometry(img, noise) {
			return fmt.Errorf("image %s, background %s, and noise %s disagree on geometry", img, bg, noise)
		}
		k := exec.Params.FloatOr("k", 4.0)
		if k <= 0 {
			return apperrors.InvalidParameter("k", "must be positive")
		}

		kf := float32(k)
		mask := frame.NewGray(img.Width, img.Height)
		for i := range mask.Pix {
			if img.Pix[i]-bg.Pix[i] > kf*noise.Pix[i] {
				mask.Pix[i] = 1
			}
		}
		return exec.Set("mask", mask)
	})
}
