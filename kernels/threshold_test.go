package kernels

import (
	"context"
	"testing"

	"github.com/asterion-dev/pipekit/device"
	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/param"
	"github.com/asterion-dev/pipekit/processor"
)

func TestThreshold_MarksExcessAboveKSigma(t *testing.T) {
	img := frame.NewGray(2, 1)
	img.Set(0, 0, 0, 10)
	img.Set(1, 0, 0, 20)
	bg := flatFrame(2, 1, 8)
	noise := flatFrame(2, 1, 1)

	exec := runKernel(t, Threshold(), param.Map{"k": param.Float(5)},
		map[string]any{"image": img, "background": bg, "noise": noise}, "mask")
	mask := outputFrame(t, exec, "mask")

	if got := mask.At(0, 0, 0); got != 0 {
		t.Fatalf("expected 2 sigma excess below a 5 sigma cut, got %v", got)
	}
	if got := mask.At(1, 0, 0); got != 1 {
		t.Fatalf("expected 12 sigma excess detected, got %v", got)
	}
}

func TestThreshold_RejectsGeometryMismatch(t *testing.T) {
	exec := processor.NewExec("inst-1", "step-1", device.CPU(), nil, map[string]any{
		"image":      frame.NewGray(2, 2),
		"background": frame.NewGray(1, 1),
		"noise":      frame.NewGray(2, 2),
	}, []string{"mask"})

	if err := Threshold().Execute(context.Background(), exec); err == nil {
		t.Fatal("expected a geometry error")
	}
}

func TestThreshold_RejectsNonPositiveK(t *testing.T) {
	exec := processor.NewExec("inst-1", "step-1", device.CPU(),
		param.Map{"k": param.Float(-1)}, map[string]any{
			"image":      frame.NewGray(1, 1),
			"background": frame.NewGray(1, 1),
			"noise":      frame.NewGray(1, 1),
		}, []string{"mask"})

	err := Threshold().Execute(context.Background(), exec)
	appErr, ok := apperrors.AsError(err)
	if !ok || appErr.Code != apperrors.CodeInvalidParameter {
		t.Fatalf("expected invalid_parameter, got %v", err)
	}
}
