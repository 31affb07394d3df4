package ports

import (
	"context"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// QuotaLedger stores per-identity, per-day, per-tool usage counters.
type QuotaLedger interface {
	// IncrementWithin atomically increments the counter for
	// (identity, day, tool) by amount if the result would not exceed limit.
	// It returns the stored count after the call and whether the increment
	// was applied. A rejected increment leaves the counter untouched.
	IncrementWithin(ctx context.Context, identity, day string, tool domain.Tool, amount, limit int) (count int, applied bool, err error)
}
