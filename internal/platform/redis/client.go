// Package redis opens the go-redis client used by the status cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"ninlookup/internal/platform/config"
)

// PoolMetrics mirrors go-redis pool statistics into Prometheus.
type PoolMetrics struct {
	Hits       prometheus.Counter
	Misses     prometheus.Counter
	Timeouts   prometheus.Counter
	StaleConns prometheus.Counter
	TotalConns prometheus.Gauge
	IdleConns  prometheus.Gauge
}

func NewPoolMetrics(reg prometheus.Registerer) *PoolMetrics {
	factory := promauto.With(reg)
	return &PoolMetrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_redis_pool_hits_total",
			Help: "Number of times a connection was found in the pool",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_redis_pool_misses_total",
			Help: "Number of times a connection was not found in the pool",
		}),
		Timeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_redis_pool_timeouts_total",
			Help: "Number of times a connection was not obtained due to timeout",
		}),
		StaleConns: factory.NewCounter(prometheus.CounterOpts{
			Name: "ninlookup_redis_pool_stale_conns_total",
			Help: "Number of stale connections removed from the pool",
		}),
		TotalConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ninlookup_redis_pool_total_conns",
			Help: "Number of total connections in the pool",
		}),
		IdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ninlookup_redis_pool_idle_conns",
			Help: "Number of idle connections in the pool",
		}),
	}
}

// Client wraps the go-redis client with health checking capabilities.
type Client struct {
	*redis.Client
	metrics   *PoolMetrics
	lastStats *redis.PoolStats
}

// New connects and pings. Returns nil, nil if the URL is empty (Redis not configured).
func New(cfg config.RedisConfig, metrics *PoolMetrics) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client, metrics: metrics}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats updates the pool metrics; counters advance by the delta since the last call.
func (c *Client) RecordPoolStats() {
	if c.metrics == nil {
		return
	}
	stats := c.PoolStats()

	c.metrics.TotalConns.Set(float64(stats.TotalConns))
	c.metrics.IdleConns.Set(float64(stats.IdleConns))

	prev := c.lastStats
	if prev == nil {
		prev = &redis.PoolStats{}
	}
	addDelta(c.metrics.Hits, stats.Hits, prev.Hits)
	addDelta(c.metrics.Misses, stats.Misses, prev.Misses)
	addDelta(c.metrics.Timeouts, stats.Timeouts, prev.Timeouts)
	addDelta(c.metrics.StaleConns, stats.StaleConns, prev.StaleConns)

	c.lastStats = stats
}

// RunPoolStats records pool statistics every interval until ctx is done.
func (c *Client) RunPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RecordPoolStats()
		}
	}
}

func addDelta(c prometheus.Counter, now, prev uint32) {
	if now > prev {
		c.Add(float64(now - prev))
	}
}
