package interfaces

import (
	"context"
	"time"
)

// ISequenceRepository issues period-scoped human-readable numbers such as
// COT-202608-0007 and PAG-202608-0012. The counter resets per prefix+period.

type ISequenceRepository interface {
	Next(ctx context.Context, prefix string, period time.Time) (string, error)
}
