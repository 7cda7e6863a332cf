package frame

import (
	"testing"

	"github.com/asterion-dev/pipekit/data"
)

func TestFrame_AtSet(t *testing.T) {
	f := New(4, 3, 2)
	f.Set(2, 1, 0, 0.5)
	f.Set(2, 1, 1, 0.75)

	if got := f.At(2, 1, 0); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := f.At(2, 1, 1); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	if got := f.At(1, 2, 0); got != 0 {
		t.Fatalf("expected untouched sample to stay zero, got %v", got)
	}
}

func TestFrame_PlaneSharesBacking(t *testing.T) {
	f := New(2, 2, 3)
	p := f.Plane(2)
	if len(p) != 4 {
		t.Fatalf("expected 4 samples per plane, got %d", len(p))
	}
	p[3] = 9
	if got := f.At(1, 1, 2); got != 9 {
		t.Fatalf("expected plane write to show through At, got %v", got)
	}
}

func TestFrame_Clone(t *testing.T) {
	f := NewGray(2, 2)
	f.Set(0, 0, 0, 1)

	c := f.Clone()
	c.Set(0, 0, 0, 5)

	if got := f.At(0, 0, 0); got != 1 {
		t.Fatalf("expected the original untouched, got %v", got)
	}
	if got := c.At(0, 0, 0); got != 5 {
		t.Fatalf("expected the clone updated, got %v", got)
	}
}

func TestFrame_Sub(t *testing.T) {
	f := NewGray(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			f.Set(x, y, 0, float32(y*4+x))
		}
	}

	s := f.Sub(1, 2, 2, 2)
	if s.Width != 2 || s.Height != 2 {
		t.Fatalf("expected 2x2 sub frame, got %dx%d", s.Width, s.Height)
	}
	if got := s.At(0, 0, 0); got != 9 {
		t.Fatalf("expected sample 9 at the sub origin, got %v", got)
	}
	if got := s.At(1, 1, 0); got != 14 {
		t.Fatalf("expected sample 14, got %v", got)
	}
}

func TestFrame_SubClampsToBounds(t *testing.T) {
	f := NewGray(4, 4)

	s := f.Sub(3, 3, 5, 5)
	if s.Width != 1 || s.Height != 1 {
		t.Fatalf("expected clamped 1x1 sub frame, got %dx%d", s.Width, s.Height)
	}

	empty := f.Sub(10, 10, 2, 2)
	if empty.Width != 0 || empty.Height != 0 {
		t.Fatalf("expected empty sub frame, got %dx%d", empty.Width, empty.Height)
	}
}

func TestFrame_SubCopiesAllPlanes(t *testing.T) {
	f := New(3, 3, 2)
	f.Set(1, 1, 1, 7)

	s := f.Sub(1, 1, 2, 2)
	if s.Channels != 2 {
		t.Fatalf("expected 2 planes, got %d", s.Channels)
	}
	if got := s.At(0, 0, 1); got != 7 {
		t.Fatalf("expected second-plane sample copied, got %v", got)
	}
}

// --- Payload typing tests ---

func TestCollection_TypesAsFrameCollection(t *testing.T) {
	c := Collection{NewGray(1, 1), NewGray(1, 1)}
	if got := data.TypeOf(c); got != data.TypeFrameCollection {
		t.Fatalf("expected frame_collection, got %s", got)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", c.Len())
	}
	if c.Item(1) != c[1] {
		t.Fatal("expected Item to return the underlying frame")
	}
}

func TestTiles_TypesAsFrameCollection(t *testing.T) {
	tiles := Tiles{
		{Frame: NewGray(2, 2), X: 0, Y: 0, Row: 0, Col: 0},
		{Frame: NewGray(2, 2), X: 2, Y: 0, Row: 0, Col: 1},
	}
	if got := data.TypeOf(tiles); got != data.TypeFrameCollection {
		t.Fatalf("expected frame_collection, got %s", got)
	}
	if got := data.TypeOf(tiles.Item(0)); got != data.TypeFrame {
		t.Fatalf("expected a tile to type as frame, got %s", got)
	}
}

func TestFrame_TypesAsFrame(t *testing.T) {
	if got := data.TypeOf(NewGray(1, 1)); got != data.TypeFrame {
		t.Fatalf("expected frame, got %s", got)
	}
}
