package ports

import (
	"context"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// QuotaService enforces the per-day free usage limits of the conversion tools.
type QuotaService interface {
	// CheckAndIncrement consumes increment units of the tool's daily quota
	// for the given identity. A decision with Allowed=false means the daily
	// cap would be crossed; the counter is left untouched in that case.
	CheckAndIncrement(ctx context.Context, tool domain.Tool, identity string, increment int) (*domain.QuotaDecision, error)
}
