package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/param"
	"github.com/asterion-dev/pipekit/stream"
)

// decodeWorkers bounds concurrent image decoding during seed loading.
const decodeWorkers = 4

// loadSeeds turns "name=path[,path...]" flags into seed payloads: a single
// path seeds one frame, multiple paths seed a frame collection in the
// order given.
func loadSeeds(ctx context.Context, specs []string) (map[string]any, error) {
	seeds := make(map[string]any, len(specs))
	for _, spec := range specs {
		name, val, ok := strings.Cut(spec, "=")
		if !ok || name == "" || val == "" {
			return nil, fmt.Errorf("invalid --seed %q: want name=image.png", spec)
		}
		paths := strings.Split(val, ",")
		frames, err := loadFrames(ctx, paths)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", name, err)
		}
		if len(frames) == 1 {
			seeds[name] = frames[0]
		} else {
			seeds[name] = frame.Collection(frames)
		}
	}
	return seeds, nil
}

type indexedPath struct {
	idx  int
	path string
}

type indexedFrame struct {
	idx int
	f   *frame.Frame
}

// loadFrames decodes images concurrently, preserving the input order.
func loadFrames(ctx context.Context, paths []string) ([]*frame.Frame, error) {
	items := make([]indexedPath, len(paths))
	for i, p := range paths {
		items[i] = indexedPath{idx: i, path: p}
	}

	decoded := stream.MapConcurrent(stream.FromSlice(items), decodeWorkers,
		func(_ context.Context, ip indexedPath) (indexedFrame, error) {
			f, err := loadFrame(ip.path)
			if err != nil {
				return indexedFrame{}, fmt.Errorf("%s: %w", ip.path, err)
			}
			return indexedFrame{idx: ip.idx, f: f}, nil
		})

	collected, err := stream.Collect(ctx, decoded)
	if err != nil {
		return nil, err
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].idx < collected[j].idx })

	frames := make([]*frame.Frame, len(collected))
	for i, c := range collected {
		frames[i] = c.f
	}
	return frames, nil
}

// loadFrame decodes one PNG or JPEG file into an RGB frame with samples
// scaled to [0, 1].
func loadFrame(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return frameFromImage(img), nil
}

func frameFromImage(img image.Image) *frame.Frame {
	bounds := img.Bounds()
	f := frame.New(bounds.Dx(), bounds.Dy(), 3)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			f.Set(x, y, 0, float32(r)/65535)
			f.Set(x, y, 1, float32(g)/65535)
			f.Set(x, y, 2, float32(b)/65535)
		}
	}
	return f
}

// parseParams turns "name=value" flags into parameter values, preferring
// the narrowest type that parses: int, then float, then string.
func parseParams(specs []string) (param.Map, error) {
	params := make(param.Map, len(specs))
	for _, spec := range specs {
		name, val, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", spec)
		}
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			params[name] = param.Int(i)
		} else if f, err := strconv.ParseFloat(val, 64); err == nil {
			params[name] = param.Float(f)
		} else {
			params[name] = param.String(val)
		}
	}
	return params, nil
}
