package kernels

import (
	"context"
	"fmt"
	"sort"

	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/processor"
)

// descriptorColumns is the schema StarDescriptors emits.
var descriptorColumns = []string{"id", "cx", "cy", "flux", "area", "peak", "width", "height"}

// StarDescriptors reduces a labeled detection map over an intensity frame
// to a descriptor table: flux-weighted centroid, integrated flux, pixel
// area, peak value, and bounding extent per region, brightest first.
// Regions smaller than min_area are dropped; limit caps the row count
// (0 keeps everything).
func StarDescriptors() processor.Processor {
	return processor.Func("star_descriptors", func(_ context.Context, exec *processor.Exec) error {
		img, err := grayFrame(exec, "image")
		if err != nil {
			return err
		}
		labels, err := grayFrame(exec, "labels")
		if err != nil {
			return err
		}
		if !sameGeometry(img, labels) {
			return fmt.Errorf("image %s and labels %s disagree on geometry", img, labels)
		}
		minArea := int(exec.Params.IntOr("min_area", 5))
		limit := int(exec.Params.IntOr("limit", 0))

		regions := measureRegions(img, labels)
		sort.Slice(regions, func(i, j int) bool { return regions[i].flux > regions[j].flux })

		tbl := frame.NewTable(descriptorColumns...)
		for _, reg := range regions {
			if reg.area < minArea {
				continue
			}
			if limit > 0 && tbl.NumRows() == limit {
				break
			}
			if err := tbl.Append(
				float64(reg.id),
				reg.cx, reg.cy,
				reg.flux,
				float64(reg.area),
				float64(reg.peak),
				float64(reg.maxX-reg.minX+1),
				float64(reg.maxY-reg.minY+1),
			); err != nil {
				return err
			}
		}
		return exec.Set("stars", tbl)
	})
}

type region struct {
	id         int32
	cx, cy     float64
	flux       float64
	area       int
	peak       float32
	minX, minY int
	maxX, maxY int
}

// measureRegions accumulates per-label statistics. Negative samples clip to
// zero so dark pixels cannot drag a centroid.
func measureRegions(img, labels *frame.Frame) []*region {
	w, h := img.Width, img.Height
	byID := make(map[int32]*region)
	var order []*region

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := int32(labels.Pix[y*w+x])
			if id == 0 {
				continue
			}
			reg, ok := byID[id]
			if !ok {
				reg = &region{id: id, minX: x, minY: y, maxX: x, maxY: y}
				byID[id] = reg
				order = append(order, reg)
			}
			v := img.Pix[y*w+x]
			if v < 0 {
				v = 0
			}
			fv := float64(v)
			reg.flux += fv
			reg.cx += fv * float64(x)
			reg.cy += fv * float64(y)
			reg.area++
			if v > reg.peak {
				reg.peak = v
			}
			if x < reg.minX {
				reg.minX = x
			}
			if x > reg.maxX {
				reg.maxX = x
			}
			if y < reg.minY {
				reg.minY = y
			}
			if y > reg.maxY {
				reg.maxY = y
			}
		}
	}

	for _, reg := range order {
		if reg.flux > 0 {
			reg.cx /= reg.flux
			reg.cy /= reg.flux
		} else {
			// A region with no positive signal centers on its bounding box.
			reg.cx = float64(reg.minX+reg.maxX) / 2
			reg.cy = float64(reg.minY+reg.maxY) / 2
		}
	}
	return order
}
