package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// counterTTL keeps day counters alive past their calendar day so a request
// straddling midnight still sees its own day's value, then lets them age out.
const counterTTL = 48 * time.Hour

// incrementWithinScript performs the conditional increment in a single round
// trip: increment iff the result stays within the limit, else leave the
// counter untouched and report the current value. Running as a Lua script
// makes the check-then-act atomic against concurrent requests.
var incrementWithinScript = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '0')
local amount = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
if current + amount > limit then
  return {current, 0}
end
local next = redis.call('HINCRBY', KEYS[1], ARGV[1], amount)
redis.call('EXPIRE', KEYS[1], ARGV[4])
return {next, 1}
`)

// QuotaLedger stores day counters as one hash per (identity, day) with a
// field per tool. Key format: quota:<identity>:<day>
type QuotaLedger struct {
	client *redis.Client
}

// NewQuotaLedger creates a QuotaLedger wrapping the given Redis client.
func NewQuotaLedger(client *redis.Client) *QuotaLedger {
	return &QuotaLedger{client: client}
}

func (l *QuotaLedger) IncrementWithin(ctx context.Context, identity, day string, tool domain.Tool, amount, limit int) (int, bool, error) {
	key := fmt.Sprintf("quota:%s:%s", identity, day)

	res, err := incrementWithinScript.Run(ctx, l.client,
		[]string{key},
		string(tool), amount, limit, int(counterTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return 0, false, fmt.Errorf("quota increment: %w", err)
	}
	if len(res) != 2 {
		return 0, false, fmt.Errorf("quota increment: unexpected script reply length %d", len(res))
	}

	return int(res[0]), res[1] == 1, nil
}
