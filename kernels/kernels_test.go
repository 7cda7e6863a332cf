package kernels

import (
	"context"
	"math"
	"testing"

	"github.com/asterion-dev/pipekit/device"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/param"
	"github.com/asterion-dev/pipekit/processor"
)

// runKernel executes a kernel against hand-built inputs and fails the test
// on any error.
func runKernel(t *testing.T, p processor.Processor, params param.Map, inputs map[string]any, ports ...string) *processor.Exec {
	t.Helper()
	exec := processor.NewExec("inst-1", "step-1", device.CPU(), params, inputs, ports)
	if err := p.Execute(context.Background(), exec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return exec
}

func outputFrame(t *testing.T, exec *processor.Exec, port string) *frame.Frame {
	t.Helper()
	v, ok := exec.Output(port)
	if !ok {
		t.Fatalf("output %q not set", port)
	}
	f, ok := v.(*frame.Frame)
	if !ok {
		t.Fatalf("output %q carries %T, want *frame.Frame", port, v)
	}
	return f
}

func outputTable(t *testing.T, exec *processor.Exec, port string) *frame.Table {
	t.Helper()
	v, ok := exec.Output(port)
	if !ok {
		t.Fatalf("output %q not set", port)
	}
	tbl, ok := v.(*frame.Table)
	if !ok {
		t.Fatalf("output %q carries %T, want *frame.Table", port, v)
	}
	return tbl
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestRegister(t *testing.T) {
	reg := processor.NewRegistry()
	Register(reg)

	for _, id := range []string{
		"grayscale", "gaussian_blur", "background_estimate", "threshold",
		"connected_components", "star_descriptors", "tile_split", "tile_stats",
	} {
		if _, ok := reg.Lookup(id); !ok {
			t.Fatalf("expected %q registered", id)
		}
	}
	if got := len(reg.List()); got != 8 {
		t.Fatalf("expected 8 kernels, got %d", got)
	}
}

// --- Grayscale tests ---

func TestGrayscale_RGB(t *testing.T) {
	src := frame.New(1, 1, 3)
	src.Set(0, 0, 0, 1)
	src.Set(0, 0, 1, 0.5)
	src.Set(0, 0, 2, 0)

	exec := runKernel(t, Grayscale(), nil, map[string]any{"image": src}, "gray")
	out := outputFrame(t, exec, "gray")

	if out.Channels != 1 {
		t.Fatalf("expected a mono frame, got %d planes", out.Channels)
	}
	want := 0.2126 + 0.5*0.7152
	if !near(float64(out.At(0, 0, 0)), want, 1e-4) {
		t.Fatalf("expected luma %v, got %v", want, out.At(0, 0, 0))
	}
}

func TestGrayscale_MonoPassesThroughAsCopy(t *testing.T) {
	src := frame.NewGray(2, 1)
	src.Set(0, 0, 0, 0.25)

	exec := runKernel(t, Grayscale(), nil, map[string]any{"image": src}, "gray")
	out := outputFrame(t, exec, "gray")

	if got := out.At(0, 0, 0); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	out.Set(0, 0, 0, 9)
	if got := src.At(0, 0, 0); got != 0.25 {
		t.Fatalf("expected the source untouched, got %v", got)
	}
}

func TestGrayscale_RejectsTwoPlanes(t *testing.T) {
	src := frame.New(1, 1, 2)
	exec := processor.NewExec("inst-1", "step-1", device.CPU(), nil,
		map[string]any{"image": src}, []string{"gray"})
	if err := Grayscale().Execute(context.Background(), exec); err == nil {
		t.Fatal("expected an error for a 2-plane frame")
	}
}

func TestGrayscale_RejectsNonFramePayload(t *testing.T) {
	exec := processor.NewExec("inst-1", "step-1", device.CPU(), nil,
		map[string]any{"image": "not a frame"}, []string{"gray"})
	if err := Grayscale().Execute(context.Background(), exec); err == nil {
		t.Fatal("expected an error for a non-frame payload")
	}
}
