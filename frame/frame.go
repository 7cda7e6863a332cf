// Package frame provides the reference payload types carried between
// pipeline steps: float32 image frames, frame collections, and row/column
// tables. Processors are free to move any payload type through the
// pipeline; these are the ones the bundled kernels speak.
package frame

import "fmt"

// Frame is a planar float32 image. Plane c starts at c*Width*Height in Pix
// and is itself row-major, matching how FITS readers hand back image data.
type Frame struct {
	// Width and Height are the pixel dimensions of each plane.
	Width, Height int
	// Channels is the number of planes: 1 for mono, 3 for RGB.
	Channels int
	// Pix holds the samples in plane-major order.
	Pix []float32
}

// New allocates a zeroed frame with the given geometry.
func New(width, height, channels int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// NewGray allocates a zeroed single-plane frame.
func NewGray(width, height int) *Frame {
	return New(width, height, 1)
}

// At returns the sample at (x, y) in plane c.
func (f *Frame) At(x, y, c int) float32 {
	return f.Pix[(c*f.Height+y)*f.Width+x]
}

// Set writes the sample at (x, y) in plane c.
func (f *Frame) Set(x, y, c int, v float32) {
	f.Pix[(c*f.Height+y)*f.Width+x] = v
}

// Plane returns plane c as a row-major subslice of Pix. The returned slice
// shares the frame's backing array.
func (f *Frame) Plane(c int) []float32 {
	n := f.Width * f.Height
	return f.Pix[c*n : (c+1)*n]
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{Width: f.Width, Height: f.Height, Channels: f.Channels}
	out.Pix = make([]float32, len(f.Pix))
	copy(out.Pix, f.Pix)
	return out
}

// Sub copies the region with top-left corner (x0, y0) and the given size
// out of the frame, clamped to the frame bounds. All planes are copied.
func (f *Frame) Sub(x0, y0, width, height int) *Frame {
	if x0 < 0 {
		width += x0
		x0 = 0
	}
	if y0 < 0 {
		height += y0
		y0 = 0
	}
	if x0+width > f.Width {
		width = f.Width - x0
	}
	if y0+height > f.Height {
		height = f.Height - y0
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	out := New(width, height, f.Channels)
	for c := 0; c < f.Channels; c++ {
		for y := 0; y < height; y++ {
			srcOff := (c*f.Height+y0+y)*f.Width + x0
			dstOff := (c*height + y) * width
			copy(out.Pix[dstOff:dstOff+width], f.Pix[srcOff:srcOff+width])
		}
	}
	return out
}

func (f *Frame) String() string {
	return fmt.Sprintf("frame %dx%dx%d", f.Width, f.Height, f.Channels)
}
