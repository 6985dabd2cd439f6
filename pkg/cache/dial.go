package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DialOption configures Dial.
type DialOption func(*dialOptions)

type dialOptions struct {
	poolSize      int
	attempts      int
	retryInterval time.Duration
	timeout       time.Duration
}

// WithPoolSize sets the connection pool size.
// Default: 10.
func WithPoolSize(n int) DialOption {
	return func(o *dialOptions) {
		o.poolSize = n
	}
}

// WithRetry sets how many times Dial pings before giving up. The wait
// between attempts grows linearly from interval.
// Default: 3 attempts, 1 second.
func WithRetry(attempts int, interval time.Duration) DialOption {
	return func(o *dialOptions) {
		o.attempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeout sets the dial, read and write timeouts.
// Default: 3 seconds.
func WithTimeout(d time.Duration) DialOption {
	return func(o *dialOptions) {
		o.timeout = d
	}
}

// Dial connects to a redis:// or rediss:// URL and pings the server.
func Dial(ctx context.Context, url string, opts ...DialOption) (redis.UniversalClient, error) {
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	o := &dialOptions{poolSize: 10, attempts: 3, retryInterval: time.Second, timeout: 3 * time.Second}
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.DialTimeout = o.timeout
	ro.ReadTimeout = o.timeout
	ro.WriteTimeout = o.timeout

	var lastErr error
	for i := range max(o.attempts, 1) {
		client := redis.NewClient(ro)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}
	return nil, errors.Join(ErrConnectionFailed, lastErr)
}
