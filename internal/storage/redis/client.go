package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// счетчик окна: INCR и PEXPIRE только при первом обращении
const allowRequestScript = `
local current = redis.call("INCR", KEYS[1])
if tonumber(current) == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

type Client struct {
	*redis.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// AllowRequest считает обращения по ключу в фиксированном окне. При ошибке Redis
// запрос пропускается, ошибка возвращается вызывающему для логирования.
func (c *Client) AllowRequest(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.Eval(ctx, allowRequestScript, []string{key}, windowMillis(window)).Int()
	if err != nil {
		return true, err
	}

	return count <= limit, nil
}

// windowMillis окно в миллисекундах, не меньше 1: PEXPIRE 0 удалил бы счетчик сразу.
func windowMillis(window time.Duration) int64 {
	if ms := window.Milliseconds(); ms > 0 {
		return ms
	}
	return 1
}
