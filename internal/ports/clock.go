package ports

import (
	"context"
	"time"
)

// Clock abstracts time for the polling loops so they can be unit tested
// without real delays.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until the context is cancelled, returning the
	// context error in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}
