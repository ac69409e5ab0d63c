package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// El contador expira a fin de mes: la cuota es por mes calendario y la
// clave incluye el mes, así que nunca se reutiliza entre periodos.
const redisUsageIncrScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIREAT", KEYS[1], ARGV[1])
end
return current
`

type redisUsageCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisUsageLimiter struct {
	client redisUsageCmds
	limit  int
	prefix string
	now    func() time.Time
}

// NewRedisUsageLimiter crea el limiter mensual respaldado en Redis.
// Redis es la única fuente de verdad del contador: nada se cachea.
func NewRedisUsageLimiter(client *redis.Client, limit int) UsageLimiter {
	if client == nil {
		return nil
	}
	if limit <= 0 {
		limit = 1
	}
	return &redisUsageLimiter{
		client: client,
		limit:  limit,
		prefix: "analysis:usage:",
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *redisUsageLimiter) key(doctorID string) string {
	normalized := strings.TrimSpace(doctorID)
	return l.prefix + normalized + ":" + l.now().Format("2006-01")
}

func (l *redisUsageLimiter) Check(ctx context.Context, doctorID string) (UsageStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	count, err := l.client.Get(ctx, l.key(doctorID)).Int()
	if err != nil {
		if err == redis.Nil {
			count = 0
		} else {
			return UsageStatus{}, err
		}
	}
	return UsageStatus{
		WithinLimit:  count < l.limit,
		CurrentCount: count,
		Limit:        l.limit,
	}, nil
}

func (l *redisUsageLimiter) Increment(ctx context.Context, doctorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	now := l.now()
	endOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return l.client.Eval(ctx, redisUsageIncrScript, []string{l.key(doctorID)}, endOfMonth.Unix()).Err()
}
