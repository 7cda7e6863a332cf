package main

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/asterion-dev/pipekit/frame"
	"github.com/asterion-dev/pipekit/runner"
)

// printSummary writes a human-readable run report.
func printSummary(w io.Writer, res *runner.Result) {
	fmt.Fprintf(w, "pipeline %s (run %s) finished in %s\n", res.Pipeline, res.RunID, res.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "instances: %d completed, %d failed, %d pending\n",
		len(res.Completed()), len(res.Failed()), len(res.Pending()))

	for _, in := range res.Failed() {
		fmt.Fprintf(w, "  failed %s (%s): %s\n", in.StepID, in.ProcessorID, in.FailureReason)
	}
	for id, proc := range res.Blocked {
		fmt.Fprintf(w, "  blocked %s: no processor %q registered\n", id, proc)
	}
	for _, step := range res.Unexpanded {
		fmt.Fprintf(w, "  unexpanded %s: fan-out source never instantiated\n", step)
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINK\tTYPE\tSTATE")
	for _, rec := range res.Records {
		state := "placeholder"
		if rec.Instantiated {
			state = "instantiated"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.OutputLink.LinkID, rec.OutputLink.Type, state)
	}
	tw.Flush()
}

// exportResults writes every instantiated record with an exportable
// payload into dir: tables as CSV, frames as 8-bit PNG. File names derive
// from the record's link id.
func exportResults(res *runner.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, rec := range res.Records {
		if !rec.Instantiated {
			continue
		}
		base := filepath.Join(dir, safeName(string(rec.OutputLink.LinkID)))
		switch payload := rec.Payload.(type) {
		case *frame.Table:
			if err := writeTableCSV(base+".csv", payload); err != nil {
				return fmt.Errorf("export %s: %w", rec.OutputLink.LinkID, err)
			}
		case *frame.Frame:
			if err := writeFramePNG(base+".png", payload); err != nil {
				return fmt.Errorf("export %s: %w", rec.OutputLink.LinkID, err)
			}
		}
	}
	return nil
}

// safeName maps a link id to a filesystem-safe file name.
func safeName(linkID string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "[", ".", "]", "")
	return r.Replace(linkID)
}

func writeTableCSV(path string, t *frame.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Columns()); err != nil {
		return err
	}
	row := make([]string, len(t.Columns()))
	for i := 0; i < t.NumRows(); i++ {
		for j, v := range t.Row(i) {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeFramePNG clamps samples to [0, 1] and writes mono frames as
// grayscale, everything else as RGB from the first three planes.
func writeFramePNG(path string, f *frame.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	bounds := image.Rect(0, 0, f.Width, f.Height)
	var img image.Image
	if f.Channels == 1 {
		gray := image.NewGray(bounds)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				gray.SetGray(x, y, color.Gray{Y: sample8(f.At(x, y, 0))})
			}
		}
		img = gray
	} else {
		rgba := image.NewRGBA(bounds)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				rgba.SetRGBA(x, y, color.RGBA{
					R: sample8(f.At(x, y, 0)),
					G: sample8(f.At(x, y, 1)),
					B: sample8(f.At(x, y, 2)),
					A: 255,
				})
			}
		}
		img = rgba
	}
	return png.Encode(file, img)
}

func sample8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
