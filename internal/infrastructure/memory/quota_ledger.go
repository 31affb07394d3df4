package memory

import (
	"context"
	"sync"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// QuotaLedger holds day counters as a map of (identity, day) to per-tool
// counts. The mutex is held across the check and the write, so concurrent
// requests cannot overshoot a limit. Old-day entries are never read again;
// they linger until the process restarts.
type QuotaLedger struct {
	mu       sync.Mutex
	counters map[string]map[domain.Tool]int
}

func NewQuotaLedger() *QuotaLedger {
	return &QuotaLedger{counters: make(map[string]map[domain.Tool]int)}
}

func (l *QuotaLedger) IncrementWithin(_ context.Context, identity, day string, tool domain.Tool, amount, limit int) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := identity + ":" + day
	counts, ok := l.counters[key]
	if !ok {
		counts = make(map[domain.Tool]int)
		l.counters[key] = counts
	}

	current := counts[tool]
	if current+amount > limit {
		return current, false, nil
	}

	counts[tool] = current + amount
	return current + amount, true, nil
}
