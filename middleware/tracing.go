// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/absmach/kvcache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ kvcache.Cache = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	cache  kvcache.Cache
}

// NewTracingMiddleware traces every cache call as a span named after the
// operation.
func NewTracingMiddleware(tracer trace.Tracer, cache kvcache.Cache) kvcache.Cache {
	return &tracingMiddleware{
		tracer: tracer,
		cache:  cache,
	}
}

func (tm *tracingMiddleware) SetValue(ctx context.Context, key string, value any) (err error) {
	ctx, span := tm.startSpan(ctx, "set_value", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.SetValue(ctx, key, value)
}

func (tm *tracingMiddleware) SetValueTTL(ctx context.Context, key string, value any, ttl time.Duration) (err error) {
	ctx, span := tm.startSpan(ctx, "set_value_ttl",
		attribute.String("key", key),
		attribute.String("ttl", ttl.String()),
	)
	defer endSpan(span, &err)

	return tm.cache.SetValueTTL(ctx, key, value, ttl)
}

func (tm *tracingMiddleware) SetMapValue(ctx context.Context, key, field string, value any) (err error) {
	ctx, span := tm.startSpan(ctx, "set_map_value",
		attribute.String("key", key),
		attribute.String("field", field),
	)
	defer endSpan(span, &err)

	return tm.cache.SetMapValue(ctx, key, field, value)
}

func (tm *tracingMiddleware) SetMapValueTTL(ctx context.Context, key, field string, value any, ttl time.Duration) (err error) {
	ctx, span := tm.startSpan(ctx, "set_map_value_ttl",
		attribute.String("key", key),
		attribute.String("field", field),
		attribute.String("ttl", ttl.String()),
	)
	defer endSpan(span, &err)

	return tm.cache.SetMapValueTTL(ctx, key, field, value, ttl)
}

func (tm *tracingMiddleware) GetValue(ctx context.Context, key string, dst any) (err error) {
	ctx, span := tm.startSpan(ctx, "get_value", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.GetValue(ctx, key, dst)
}

func (tm *tracingMiddleware) GetMapValue(ctx context.Context, key, field string, dst any) (err error) {
	ctx, span := tm.startSpan(ctx, "get_map_value",
		attribute.String("key", key),
		attribute.String("field", field),
	)
	defer endSpan(span, &err)

	return tm.cache.GetMapValue(ctx, key, field, dst)
}

func (tm *tracingMiddleware) DelMapValue(ctx context.Context, key, field string) (err error) {
	ctx, span := tm.startSpan(ctx, "del_map_value",
		attribute.String("key", key),
		attribute.String("field", field),
	)
	defer endSpan(span, &err)

	return tm.cache.DelMapValue(ctx, key, field)
}

func (tm *tracingMiddleware) DelValue(ctx context.Context, key string) (err error) {
	ctx, span := tm.startSpan(ctx, "del_value", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.DelValue(ctx, key)
}

func (tm *tracingMiddleware) Expire(ctx context.Context, key string, ttl time.Duration) (_ bool, err error) {
	ctx, span := tm.startSpan(ctx, "expire",
		attribute.String("key", key),
		attribute.String("ttl", ttl.String()),
	)
	defer endSpan(span, &err)

	return tm.cache.Expire(ctx, key, ttl)
}

func (tm *tracingMiddleware) MapKeys(ctx context.Context, key string) (_ []string, err error) {
	ctx, span := tm.startSpan(ctx, "map_keys", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.MapKeys(ctx, key)
}

func (tm *tracingMiddleware) HasKey(ctx context.Context, key string) (_ bool, err error) {
	ctx, span := tm.startSpan(ctx, "has_key", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.HasKey(ctx, key)
}

func (tm *tracingMiddleware) Keys(ctx context.Context, pattern string) (_ []string, err error) {
	ctx, span := tm.startSpan(ctx, "keys", attribute.String("pattern", pattern))
	defer endSpan(span, &err)

	return tm.cache.Keys(ctx, pattern)
}

func (tm *tracingMiddleware) Incr(ctx context.Context, key string, delta int64) (_ int64, err error) {
	ctx, span := tm.startSpan(ctx, "incr",
		attribute.String("key", key),
		attribute.Int64("delta", delta),
	)
	defer endSpan(span, &err)

	return tm.cache.Incr(ctx, key, delta)
}

func (tm *tracingMiddleware) ZSetAdd(ctx context.Context, key string, value any, score float64) (_ bool, err error) {
	ctx, span := tm.startSpan(ctx, "zset_add",
		attribute.String("key", key),
		attribute.Float64("score", score),
	)
	defer endSpan(span, &err)

	return tm.cache.ZSetAdd(ctx, key, value, score)
}

func (tm *tracingMiddleware) ZSetDel(ctx context.Context, key string, values ...any) (_ int64, err error) {
	ctx, span := tm.startSpan(ctx, "zset_del",
		attribute.String("key", key),
		attribute.Int("members", len(values)),
	)
	defer endSpan(span, &err)

	return tm.cache.ZSetDel(ctx, key, values...)
}

func (tm *tracingMiddleware) ZSetSize(ctx context.Context, key string) (_ int64, err error) {
	ctx, span := tm.startSpan(ctx, "zset_size", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.ZSetSize(ctx, key)
}

func (tm *tracingMiddleware) ZSetRange(ctx context.Context, key string, start, end int64) (_ kvcache.Values, err error) {
	ctx, span := tm.startSpan(ctx, "zset_range", rangeAttributes(key, start, end)...)
	defer endSpan(span, &err)

	return tm.cache.ZSetRange(ctx, key, start, end)
}

func (tm *tracingMiddleware) ZSetRevRange(ctx context.Context, key string, start, end int64) (_ kvcache.Values, err error) {
	ctx, span := tm.startSpan(ctx, "zset_rev_range", rangeAttributes(key, start, end)...)
	defer endSpan(span, &err)

	return tm.cache.ZSetRevRange(ctx, key, start, end)
}

func (tm *tracingMiddleware) RPush(ctx context.Context, key string, value any) (_ int64, err error) {
	ctx, span := tm.startSpan(ctx, "rpush", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.RPush(ctx, key, value)
}

func (tm *tracingMiddleware) LLen(ctx context.Context, key string) (_ int64, err error) {
	ctx, span := tm.startSpan(ctx, "llen", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.LLen(ctx, key)
}

func (tm *tracingMiddleware) LRange(ctx context.Context, key string, start, end int64) (_ kvcache.Values, err error) {
	ctx, span := tm.startSpan(ctx, "lrange", rangeAttributes(key, start, end)...)
	defer endSpan(span, &err)

	return tm.cache.LRange(ctx, key, start, end)
}

func (tm *tracingMiddleware) LPop(ctx context.Context, key string, dst any) (err error) {
	ctx, span := tm.startSpan(ctx, "lpop", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.LPop(ctx, key, dst)
}

func (tm *tracingMiddleware) LRemove(ctx context.Context, key string, value any) (_ int64, err error) {
	ctx, span := tm.startSpan(ctx, "lremove", attribute.String("key", key))
	defer endSpan(span, &err)

	return tm.cache.LRemove(ctx, key, value)
}

func (tm *tracingMiddleware) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tm.tracer.Start(ctx, name, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindClient))
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}

func rangeAttributes(key string, start, end int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("key", key),
		attribute.Int64("start", start),
		attribute.Int64("end", end),
	}
}
