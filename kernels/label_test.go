package kernels

import (
	"testing"

	"github.com/asterion-dev/pipekit/frame"
)

func maskFrame(w, h int, on [][2]int) *frame.Frame {
	f := frame.NewGray(w, h)
	for _, p := range on {
		f.Set(p[0], p[1], 0, 1)
	}
	return f
}

func TestLabelRegions_SeparatesAndMerges(t *testing.T) {
	// Three regions: a top-left pair, a right-edge blob connected only
	// through a diagonal, and an isolated pixel at the bottom.
	mask := maskFrame(5, 5, [][2]int{
		{0, 0}, {1, 0}, {4, 0},
		{1, 1}, {4, 1},
		{3, 2},
		{0, 4},
	})

	labels, n := labelRegions(mask)
	if n != 3 {
		t.Fatalf("expected 3 regions, got %d", n)
	}
	if got := labels.At(1, 1, 0); got != 1 {
		t.Fatalf("expected the first region labeled 1, got %v", got)
	}
	if labels.At(3, 2, 0) != labels.At(4, 0, 0) {
		t.Fatalf("expected the diagonal pixel merged into region 2, got %v and %v",
			labels.At(3, 2, 0), labels.At(4, 0, 0))
	}
	if got := labels.At(0, 4, 0); got != 3 {
		t.Fatalf("expected the isolated pixel labeled 3, got %v", got)
	}
	if got := labels.At(2, 2, 0); got != 0 {
		t.Fatalf("expected background to stay 0, got %v", got)
	}
}

func TestLabelRegions_UnionAcrossProvisionalLabels(t *testing.T) {
	// A U shape: the two arms get distinct provisional labels on the first
	// row and must merge when the bottom row joins them.
	mask := maskFrame(3, 2, [][2]int{
		{0, 0}, {2, 0},
		{0, 1}, {1, 1}, {2, 1},
	})

	labels, n := labelRegions(mask)
	if n != 1 {
		t.Fatalf("expected one merged region, got %d", n)
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}} {
		if got := labels.At(p[0], p[1], 0); got != 1 {
			t.Fatalf("expected label 1 at (%d,%d), got %v", p[0], p[1], got)
		}
	}
}

func TestLabelRegions_EmptyMask(t *testing.T) {
	labels, n := labelRegions(frame.NewGray(3, 3))
	if n != 0 {
		t.Fatalf("expected no regions, got %d", n)
	}
	for i, v := range labels.Pix {
		if v != 0 {
			t.Fatalf("expected all background, got %v at %d", v, i)
		}
	}
}

func TestConnectedComponents_Kernel(t *testing.T) {
	mask := maskFrame(3, 1, [][2]int{{0, 0}, {2, 0}})

	exec := runKernel(t, ConnectedComponents(), nil, map[string]any{"mask": mask}, "labels")
	labels := outputFrame(t, exec, "labels")

	if labels.At(0, 0, 0) == labels.At(2, 0, 0) {
		t.Fatal("expected two separate regions")
	}
	if labels.At(1, 0, 0) != 0 {
		t.Fatal("expected the gap to stay background")
	}
}
