// Package resilience provides patterns for building fault-tolerant pipelines.
//
// This package includes:
//   - Retry: Retries failed operations with exponential backoff
//   - Bulkhead: Limits concurrent executions to isolate failures
//
// The scheduler uses a bulkhead to cap in-flight processor executions and
// retry to guard flaky resource acquisition:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 4})
//
//	if err := bh.AcquireSlot(ctx); err != nil {
//	    return err
//	}
//	go func() {
//	    defer bh.ReleaseSlot()
//	    runInstance(ctx, inst)
//	}()
//
//	dev, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (device.Context, error) {
//	    return factory(ctx)
//	})
package resilience
