package testutil

import (
	"context"
	"time"

	"shoctl/internal/ports"
)

// Compile-time interface compliance check
var _ ports.Clock = (*FakeClock)(nil)

// FakeClock advances instantly on Sleep so polling loops can be driven
// through many iterations without real delays.
type FakeClock struct {
	now    time.Time
	Sleeps []time.Duration
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Sleeps = append(c.Sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// Advance moves the clock forward without a Sleep call.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
