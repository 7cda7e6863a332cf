package kernels

import (
	"context"

	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// ConnectedComponents labels 8-connected regions of a binary mask. Labels
// are compacted to 1..n in scan order; background stays 0.
func ConnectedComponents() processor.Processor {
	return processor.Func("connected_components", func(_ context.Context, exec *processor.Exec) error {
		mask, err := grayFrame(exec, "mask")
		if err != nil {
			return err
		}
		labels, _ := labelRegions(mask)
		return exec.Set("labels", labels)
	})
}

// labelRegions runs the classic two-pass union-find labeling and returns
// the label frame plus the number of regions.
func labelRegions(mask *frame.Frame) (*frame.Frame, int) {
	w, h := mask.Width, mask.Height
	ids := make([]int32, w*h)
	uf := newUnionFind()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*w+x] <= 0 {
				continue
			}
			// The four already-scanned neighbors of the 8-neighborhood.
			var neighbors [4]int32
			n := 0
			if x > 0 && ids[y*w+x-1] != 0 {
				neighbors[n] = ids[y*w+x-1]
				n++
			}
			if y > 0 {
				if x > 0 && ids[(y-1)*w+x-1] != 0 {
					neighbors[n] = ids[(y-1)*w+x-1]
					n++
				}
				if ids[(y-1)*w+x] != 0 {
					neighbors[n] = ids[(y-1)*w+x]
					n++
				}
				if x < w-1 && ids[(y-1)*w+x+1] != 0 {
					neighbors[n] = ids[(y-1)*w+x+1]
					n++
				}
			}
			if n == 0 {
				ids[y*w+x] = uf.add()
				continue
			}
			lowest := neighbors[0]
			for i := 1; i < n; i++ {
				if neighbors[i] < lowest {
					lowest = neighbors[i]
				}
			}
			ids[y*w+x] = lowest
			for i := 0; i < n; i++ {
				uf.union(lowest, neighbors[i])
			}
		}
	}

	// Second pass: resolve roots and compact to 1..n in scan order.
	compact := make(map[int32]int32)
	out := frame.NewGray(w, h)
	for i, id := range ids {
		if id == 0 {
			continue
		}
		root := uf.find(id)
		c, ok := compact[root]
		if !ok {
			c = int32(len(compact) + 1)
			compact[root] = c
		}
		out.Pix[i] = float32(c)
	}
	return out, len(compact)
}

// unionFind is a slice-backed disjoint set over label ids. Index 0 is the
// background sentinel and never joins a set.
type unionFind struct {
	parent []int32
}

func newUnionFind() *unionFind {
	return &unionFind{parent: []int32{0}}
}

func (u *unionFind) add() int32 {
	id := int32(len(u.parent))
	u.parent = append(u.parent, id)
	return id
}

func (u *unionFind) find(x int32) int32 {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}
