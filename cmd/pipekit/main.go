// Command pipekit runs YAML-defined image-processing pipelines: it seeds
// the data store from image files, schedules the step graph over the
// built-in kernels, and exports the results.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
