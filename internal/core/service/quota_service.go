package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

const dayKeyFormat = "20060102"

// QuotaService enforces per-day free usage limits. Counters roll over
// implicitly at midnight server local time: a new day means a new key, and
// old-day counters are simply never read again.
type QuotaService struct {
	ledger ports.QuotaLedger
	limits map[domain.Tool]int
	logger zerolog.Logger
}

func NewQuotaService(ledger ports.QuotaLedger, limits map[domain.Tool]int, logger zerolog.Logger) *QuotaService {
	return &QuotaService{ledger: ledger, limits: limits, logger: logger}
}

func (s *QuotaService) CheckAndIncrement(ctx context.Context, tool domain.Tool, identity string, increment int) (*domain.QuotaDecision, error) {
	if increment <= 0 {
		increment = 1
	}
	limit := s.limits[tool]
	day := time.Now().Format(dayKeyFormat)

	count, applied, err := s.ledger.IncrementWithin(ctx, identity, day, tool, increment, limit)
	if err != nil {
		return nil, err
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	if !applied {
		s.logger.Debug().
			Str("tool", string(tool)).
			Str("identity", identity).
			Int("limit", limit).
			Msg("daily quota exhausted")
	}

	return &domain.QuotaDecision{
		Allowed:   applied,
		Remaining: remaining,
		Limit:     limit,
		Day:       day,
	}, nil
}
