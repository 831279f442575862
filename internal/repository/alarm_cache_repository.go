package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	redisapp "fourcut/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// должно быть намного больше TTL самого счетчика
const unreadVersionTTL = 24 * time.Hour

// SET только при неизменной версии: KEYS = count, version; ARGV = count, version, ttl ms
const setUnreadScript = `
local current = redis.call("GET", KEYS[2]) or "0"
if current == ARGV[2] then
    redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
    return 1
end
return 0
`

// KEYS парами (count, version); ARGV[1] = ttl версии в ms
const invalidateUnreadScript = `
for i = 1, #KEYS, 2 do
    redis.call("DEL", KEYS[i])
    redis.call("INCR", KEYS[i + 1])
    redis.call("PEXPIRE", KEYS[i + 1], ARGV[1])
end
return #KEYS / 2
`

// RedisAlarmCacheRepo кэширует число непрочитанных уведомлений получателя.
type RedisAlarmCacheRepo struct {
	Client *redisapp.Client
	TTL    time.Duration
}

func NewRedisAlarmCacheRepo(client *redisapp.Client, ttl time.Duration) *RedisAlarmCacheRepo {
	return &RedisAlarmCacheRepo{Client: client, TTL: ttl}
}

// GetUnreadCount возвращает (count, found, err); промах кэша не является ошибкой.
func (r *RedisAlarmCacheRepo) GetUnreadCount(ctx context.Context, receiverID int64) (int64, bool, error) {
	val, err := r.Client.Get(ctx, UnreadCountKey(receiverID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// UnreadVersion текущая версия счетчика; читать до похода в базу.
func (r *RedisAlarmCacheRepo) UnreadVersion(ctx context.Context, receiverID int64) (int64, error) {
	val, err := r.Client.Get(ctx, UnreadVersionKey(receiverID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

// SetUnreadCount кладет счетчик, если с момента чтения версии не было инвалидации.
// false означает, что значение устарело и не записано.
func (r *RedisAlarmCacheRepo) SetUnreadCount(ctx context.Context, receiverID int64, count, version int64) (bool, error) {
	stored, err := r.Client.Eval(ctx, setUnreadScript,
		[]string{UnreadCountKey(receiverID), UnreadVersionKey(receiverID)},
		count, version, r.TTL.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (r *RedisAlarmCacheRepo) InvalidateUnreadCount(ctx context.Context, receiverIDs ...int64) error {
	if len(receiverIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, 2*len(receiverIDs))
	for _, id := range receiverIDs {
		keys = append(keys, UnreadCountKey(id), UnreadVersionKey(id))
	}

	return r.Client.Eval(ctx, invalidateUnreadScript, keys, unreadVersionTTL.Milliseconds()).Err()
}

func UnreadCountKey(receiverID int64) string {
	return "alarm:unread:" + strconv.FormatInt(receiverID, 10)
}

func UnreadVersionKey(receiverID int64) string {
	return "alarm:unread:" + strconv.FormatInt(receiverID, 10) + ":v"
}
