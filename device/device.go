package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/logger"
	"github.com/asterion-dev/pipekit/resilience"
)

// Context is an opaque handle to an acquired compute resource.
type Context interface {
	// Name identifies the backing device (e.g. "cpu", "cuda:0").
	Name() string
}

// cpuContext is the built-in host CPU device.
type cpuContext struct{}

func (cpuContext) Name() string { return "cpu" }

// CPU returns the built-in host CPU context. It is always available and
// needs no acquisition.
func CPU() Context { return cpuContext{} }

// Factory creates a device context. Factories may fail transiently
// (driver warm-up, queue exhaustion); Acquire retries them.
type Factory func(ctx context.Context) (Context, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

func init() {
	RegisterFactory("cpu", func(context.Context) (Context, error) {
		return CPU(), nil
	})
}

// RegisterFactory registers a device factory under the given name.
// Registering the same name again replaces the earlier factory.
func RegisterFactory(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = f
}

// Registered reports whether a factory exists for the given name.
func Registered(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Acquire resolves the named factory and creates a device context, retrying
// transient failures with backoff. An unregistered name fails immediately.
func Acquire(ctx context.Context, name string) (Context, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, apperrors.ResourceCreation("device", fmt.Errorf("no device factory registered for %q", name))
	}

	cfg := resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			logger.Warn("device acquisition failed, retrying", logger.Fields(
				"device", name,
				"attempt", attempt,
				"backoff", backoff.String(),
				"error", err.Error(),
			))
		},
	}

	dev, err := resilience.Retry(ctx, cfg, func() (Context, error) {
		return f(ctx)
	})
	if err != nil {
		return nil, apperrors.ResourceCreation("device", err).WithDetail("device", name)
	}

	logger.Debug("device acquired", logger.Fields("device", dev.Name()))
	return dev, nil
}
