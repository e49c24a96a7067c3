// Package location models the device location boundary. Acquiring a fix is
// the only latency-bearing step around the engine: it runs with a timeout and
// can be cancelled by the user through the context. The resolved coordinate
// is then handed to the engine as a plain value.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
)

var (
	// ErrUnavailable means the provider has no position to offer.
	ErrUnavailable = errors.New("location unavailable")
	// ErrTimeout means no fix arrived before the acquisition timeout.
	ErrTimeout = errors.New("location request timed out")
	// ErrCanceled means the caller abandoned the request.
	ErrCanceled = errors.New("location request canceled")
)

// Fix is a resolved position with the metadata a GPS receiver reports.
// Accuracy does not gate use of the coordinate.
type Fix struct {
	Coordinate sunpath.GeoCoordinate
	AccuracyM  float64   // horizontal accuracy radius in meters, 0 if unknown
	AltitudeM  *float64  // meters above sea level, nil if not reported
	Timestamp  time.Time // when the fix was taken
}

// Provider yields a position. Implementations should honour ctx.
type Provider interface {
	Locate(ctx context.Context) (Fix, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Fix, error)

// Locate implements Provider.
func (f ProviderFunc) Locate(ctx context.Context) (Fix, error) { return f(ctx) }

// Static always returns the same fix, e.g. a site preset from configuration
// or coordinates typed in by hand.
type Static struct {
	Fix Fix
}

// Locate implements Provider.
func (s Static) Locate(ctx context.Context) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	return s.Fix, nil
}

// Acquirer runs providers with a timeout.
type Acquirer struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewAcquirer returns an Acquirer. A nil logger is replaced with zap.NewNop.
func NewAcquirer(timeout time.Duration, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{Timeout: timeout, Logger: logger}
}

type result struct {
	fix Fix
	err error
}

// Acquire asks p for a fix. It returns ErrTimeout when the timeout elapses
// first and ErrCanceled when ctx is cancelled by the caller. A fix whose
// coordinate fails validation is rejected with sunpath.ErrInvalidInput.
func (a *Acquirer) Acquire(ctx context.Context, p Provider) (Fix, error) {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parent := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	logger.Debug("Requesting location", zap.Duration("timeout", a.Timeout))

	// Buffered so the provider goroutine never blocks after we give up.
	done := make(chan result, 1)
	go func() {
		fix, err := p.Locate(ctx)
		done <- result{fix: fix, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return Fix{}, classify(logger, a.Timeout, parent, ctx, r.err)
		}
		if err := r.fix.Coordinate.Validate(); err != nil {
			logger.Warn("Provider returned invalid coordinate", zap.Error(err))
			return Fix{}, err
		}
		logger.Info("Location acquired",
			zap.Float64("lat", r.fix.Coordinate.Latitude),
			zap.Float64("lon", r.fix.Coordinate.Longitude),
			zap.Float64("accuracy_m", r.fix.AccuracyM))
		return r.fix, nil

	case <-ctx.Done():
		return Fix{}, classify(logger, a.Timeout, parent, ctx, ctx.Err())
	}
}

func classify(logger *zap.Logger, timeout time.Duration, parent, ctx context.Context, err error) error {
	switch {
	case parent.Err() != nil:
		logger.Info("Location request canceled")
		return fmt.Errorf("%w: %v", ErrCanceled, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		logger.Warn("Location request timed out", zap.Duration("timeout", timeout))
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case errors.Is(err, ErrUnavailable):
		logger.Warn("Location unavailable", zap.Error(err))
		return err
	default:
		logger.Warn("Location provider failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
