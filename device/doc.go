// Package device provides opaque compute-device contexts for processors.
//
// A device context represents an acquired execution resource (a CPU worker
// setup, a GPU queue handle, a remote accelerator session). The scheduler
// acquires one context per run and hands it to every processor execution;
// processors that do not care about placement ignore it.
//
// Backends register a Factory under a name; Acquire resolves the name and
// retries transient acquisition failures before giving up:
//
//	device.RegisterFactory("cpu", func(ctx context.Context) (device.Context, error) {
//	    return device.CPU(), nil
//	})
//
//	dev, err := device.Acquire(ctx, "cpu")
package device
