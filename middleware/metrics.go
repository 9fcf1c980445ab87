// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package middleware provides logging, metrics and tracing decorators for
// the cache facade.
package middleware

import (
	"context"
	"time"

	"github.com/absmach/kvcache"
	"github.com/go-kit/kit/metrics"
)

var _ kvcache.Cache = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	cache   kvcache.Cache
}

// NewMetricsMiddleware instruments the cache by tracking call count and
// latency per method.
func NewMetricsMiddleware(counter metrics.Counter, latency metrics.Histogram, cache kvcache.Cache) kvcache.Cache {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		cache:   cache,
	}
}

func (mm *metricsMiddleware) SetValue(ctx context.Context, key string, value any) error {
	defer mm.observe("set_value", time.Now())

	return mm.cache.SetValue(ctx, key, value)
}

func (mm *metricsMiddleware) SetValueTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	defer mm.observe("set_value_ttl", time.Now())

	return mm.cache.SetValueTTL(ctx, key, value, ttl)
}

func (mm *metricsMiddleware) SetMapValue(ctx context.Context, key, field string, value any) error {
	defer mm.observe("set_map_value", time.Now())

	return mm.cache.SetMapValue(ctx, key, field, value)
}

func (mm *metricsMiddleware) SetMapValueTTL(ctx context.Context, key, field string, value any, ttl time.Duration) error {
	defer mm.observe("set_map_value_ttl", time.Now())

	return mm.cache.SetMapValueTTL(ctx, key, field, value, ttl)
}

func (mm *metricsMiddleware) GetValue(ctx context.Context, key string, dst any) error {
	defer mm.observe("get_value", time.Now())

	return mm.cache.GetValue(ctx, key, dst)
}

func (mm *metricsMiddleware) GetMapValue(ctx context.Context, key, field string, dst any) error {
	defer mm.observe("get_map_value", time.Now())

	return mm.cache.GetMapValue(ctx, key, field, dst)
}

func (mm *metricsMiddleware) DelMapValue(ctx context.Context, key, field string) error {
	defer mm.observe("del_map_value", time.Now())

	return mm.cache.DelMapValue(ctx, key, field)
}

func (mm *metricsMiddleware) DelValue(ctx context.Context, key string) error {
	defer mm.observe("del_value", time.Now())

	return mm.cache.DelValue(ctx, key)
}

func (mm *metricsMiddleware) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	defer mm.observe("expire", time.Now())

	return mm.cache.Expire(ctx, key, ttl)
}

func (mm *metricsMiddleware) MapKeys(ctx context.Context, key string) ([]string, error) {
	defer mm.observe("map_keys", time.Now())

	return mm.cache.MapKeys(ctx, key)
}

func (mm *metricsMiddleware) HasKey(ctx context.Context, key string) (bool, error) {
	defer mm.observe("has_key", time.Now())

	return mm.cache.HasKey(ctx, key)
}

func (mm *metricsMiddleware) Keys(ctx context.Context, pattern string) ([]string, error) {
	defer mm.observe("keys", time.Now())

	return mm.cache.Keys(ctx, pattern)
}

func (mm *metricsMiddleware) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	defer mm.observe("incr", time.Now())

	return mm.cache.Incr(ctx, key, delta)
}

func (mm *metricsMiddleware) ZSetAdd(ctx context.Context, key string, value any, score float64) (bool, error) {
	defer mm.observe("zset_add", time.Now())

	return mm.cache.ZSetAdd(ctx, key, value, score)
}

func (mm *metricsMiddleware) ZSetDel(ctx context.Context, key string, values ...any) (int64, error) {
	defer mm.observe("zset_del", time.Now())

	return mm.cache.ZSetDel(ctx, key, values...)
}

func (mm *metricsMiddleware) ZSetSize(ctx context.Context, key string) (int64, error) {
	defer mm.observe("zset_size", time.Now())

	return mm.cache.ZSetSize(ctx, key)
}

func (mm *metricsMiddleware) ZSetRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	defer mm.observe("zset_range", time.Now())

	return mm.cache.ZSetRange(ctx, key, start, end)
}

func (mm *metricsMiddleware) ZSetRevRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	defer mm.observe("zset_rev_range", time.Now())

	return mm.cache.ZSetRevRange(ctx, key, start, end)
}

func (mm *metricsMiddleware) RPush(ctx context.Context, key string, value any) (int64, error) {
	defer mm.observe("rpush", time.Now())

	return mm.cache.RPush(ctx, key, value)
}

func (mm *metricsMiddleware) LLen(ctx context.Context, key string) (int64, error) {
	defer mm.observe("llen", time.Now())

	return mm.cache.LLen(ctx, key)
}

func (mm *metricsMiddleware) LRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	defer mm.observe("lrange", time.Now())

	return mm.cache.LRange(ctx, key, start, end)
}

func (mm *metricsMiddleware) LPop(ctx context.Context, key string, dst any) error {
	defer mm.observe("lpop", time.Now())

	return mm.cache.LPop(ctx, key, dst)
}

func (mm *metricsMiddleware) LRemove(ctx context.Context, key string, value any) (int64, error) {
	defer mm.observe("lremove", time.Now())

	return mm.cache.LRemove(ctx, key, value)
}

func (mm *metricsMiddleware) observe(method string, begin time.Time) {
	mm.counter.With("method", method).Add(1)
	mm.latency.With("method", method).Observe(time.Since(begin).Seconds())
}
