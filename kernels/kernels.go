// Package kernels provides the built-in image processors: color conversion,
// gaussian blurring, background estimation, k-sigma thresholding,
// connected-component labeling, star descriptors, and frame tiling.
//
// Every kernel is a processor.Processor and moves frame package payloads.
package kernels

import (
	"fmt"
	"math"

	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// Register adds every built-in kernel to the registry.
func Register(reg *processor.Registry) {
	reg.Register(Grayscale())
	reg.Register(GaussianBlur())
	reg.Register(BackgroundEstimate())
	reg.Register(Threshold())
	reg.Register(ConnectedComponents())
	reg.Register(StarDescriptors())
	reg.Register(TileSplit())
	reg.Register(TileStats())
}

// inputFrame fetches a port payload and coerces it to a frame. Tiles pass
// as their underlying frame.
func inputFrame(exec *processor.Exec, port string) (*frame.Frame, error) {
	v, ok := exec.Input(port)
	if !ok {
		return nil, fmt.Errorf("input %q not resolved", port)
	}
	switch x := v.(type) {
	case *frame.Frame:
		return x, nil
	case *frame.Tile:
		return x.Frame, nil
	default:
		return nil, fmt.Errorf("input %q carries %T, want a frame", port, v)
	}
}

// grayFrame is inputFrame restricted to single-plane frames.
func grayFrame(exec *processor.Exec, port string) (*frame.Frame, error) {
	f, err := inputFrame(exec, port)
	if err != nil {
		return nil, err
	}
	if f.Channels != 1 {
		return nil, fmt.Errorf("input %q has %d planes, want 1", port, f.Channels)
	}
	return f, nil
}

// sameGeometry checks that two frames agree pixel for pixel in shape.
func sameGeometry(a, b *frame.Frame) bool {
	return a.Width == b.Width && a.Height == b.Height
}

// meanStd returns the mean and population standard deviation.
func meanStd(samples []float64) (mean, std float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean = sum / float64(len(samples))
	var sq float64
	for _, v := range samples {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(samples)))
}
