// Package processor defines the plug-in contract for pipeline steps.
//
// A Processor is a named unit of work. The scheduler resolves a step's
// inputs and parameters, packs them into an Exec, and calls Execute once
// per process instance. The processor reads inputs by port name, writes
// every declared output with Set, and returns an error to fail the
// instance:
//
//	type blur struct{}
//
//	func (blur) ID() string { return "gaussian_blur" }
//
//	func (blur) Execute(ctx context.Context, exec *processor.Exec) error {
//	    img, _ := exec.Input("image")
//	    sigma := exec.Params.FloatOr("sigma", 1.0)
//	    out, err := gaussianBlur(img.(*frame.Frame), sigma)
//	    if err != nil {
//	        return err
//	    }
//	    return exec.Set("blurred", out)
//	}
//
// Processors are looked up by id through a Registry. Middleware wrappers
// (WithLogging, WithTracing, WithMetrics) decorate a Processor without
// changing its contract.
package processor
