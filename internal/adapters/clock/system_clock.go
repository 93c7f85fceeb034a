package clock

import (
	"context"
	"time"

	"shoctl/internal/ports"
)

var _ ports.Clock = (*SystemClock)(nil)

// SystemClock implements ports.Clock on real time.
type SystemClock struct{}

func ProvideSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

func (c *SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
