// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/kvcache"
	"github.com/absmach/kvcache/pkg/errors"
)

var _ kvcache.Cache = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	cache  kvcache.Cache
}

// NewLoggingMiddleware adds logging facilities to the cache. Writes are
// logged at info level, reads at debug level and failures at warn level.
func NewLoggingMiddleware(logger *slog.Logger, cache kvcache.Cache) kvcache.Cache {
	return &loggingMiddleware{
		logger: logger,
		cache:  cache,
	}
}

func (lm *loggingMiddleware) SetValue(ctx context.Context, key string, value any) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Set value", begin, err, slog.String("key", key))
	}(time.Now())

	return lm.cache.SetValue(ctx, key, value)
}

func (lm *loggingMiddleware) SetValueTTL(ctx context.Context, key string, value any, ttl time.Duration) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Set value with TTL", begin, err,
			slog.String("key", key),
			slog.String("ttl", ttl.String()),
		)
	}(time.Now())

	return lm.cache.SetValueTTL(ctx, key, value, ttl)
}

func (lm *loggingMiddleware) SetMapValue(ctx context.Context, key, field string, value any) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Set map value", begin, err,
			slog.String("key", key),
			slog.String("field", field),
		)
	}(time.Now())

	return lm.cache.SetMapValue(ctx, key, field, value)
}

func (lm *loggingMiddleware) SetMapValueTTL(ctx context.Context, key, field string, value any, ttl time.Duration) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Set map value with TTL", begin, err,
			slog.String("key", key),
			slog.String("field", field),
			slog.String("ttl", ttl.String()),
		)
	}(time.Now())

	return lm.cache.SetMapValueTTL(ctx, key, field, value, ttl)
}

func (lm *loggingMiddleware) GetValue(ctx context.Context, key string, dst any) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "Get value", begin, err, slog.String("key", key))
	}(time.Now())

	return lm.cache.GetValue(ctx, key, dst)
}

func (lm *loggingMiddleware) GetMapValue(ctx context.Context, key, field string, dst any) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "Get map value", begin, err,
			slog.String("key", key),
			slog.String("field", field),
		)
	}(time.Now())

	return lm.cache.GetMapValue(ctx, key, field, dst)
}

func (lm *loggingMiddleware) DelMapValue(ctx context.Context, key, field string) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Delete map value", begin, err,
			slog.String("key", key),
			slog.String("field", field),
		)
	}(time.Now())

	return lm.cache.DelMapValue(ctx, key, field)
}

func (lm *loggingMiddleware) DelValue(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Delete value", begin, err, slog.String("key", key))
	}(time.Now())

	return lm.cache.DelValue(ctx, key)
}

func (lm *loggingMiddleware) Expire(ctx context.Context, key string, ttl time.Duration) (ok bool, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Expire", begin, err,
			slog.String("key", key),
			slog.String("ttl", ttl.String()),
			slog.Bool("exists", ok),
		)
	}(time.Now())

	return lm.cache.Expire(ctx, key, ttl)
}

func (lm *loggingMiddleware) MapKeys(ctx context.Context, key string) (fields []string, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "List map keys", begin, err,
			slog.String("key", key),
			slog.Int("count", len(fields)),
		)
	}(time.Now())

	return lm.cache.MapKeys(ctx, key)
}

func (lm *loggingMiddleware) HasKey(ctx context.Context, key string) (ok bool, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "Check key", begin, err,
			slog.String("key", key),
			slog.Bool("exists", ok),
		)
	}(time.Now())

	return lm.cache.HasKey(ctx, key)
}

func (lm *loggingMiddleware) Keys(ctx context.Context, pattern string) (keys []string, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "List keys", begin, err,
			slog.String("pattern", pattern),
			slog.Int("count", len(keys)),
		)
	}(time.Now())

	return lm.cache.Keys(ctx, pattern)
}

func (lm *loggingMiddleware) Incr(ctx context.Context, key string, delta int64) (val int64, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Increment", begin, err,
			slog.String("key", key),
			slog.Int64("delta", delta),
			slog.Int64("value", val),
		)
	}(time.Now())

	return lm.cache.Incr(ctx, key, delta)
}

func (lm *loggingMiddleware) ZSetAdd(ctx context.Context, key string, value any, score float64) (added bool, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Add sorted set member", begin, err,
			slog.String("key", key),
			slog.Float64("score", score),
			slog.Bool("added", added),
		)
	}(time.Now())

	return lm.cache.ZSetAdd(ctx, key, value, score)
}

func (lm *loggingMiddleware) ZSetDel(ctx context.Context, key string, values ...any) (removed int64, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Remove sorted set members", begin, err,
			slog.String("key", key),
			slog.Int("members", len(values)),
			slog.Int64("removed", removed),
		)
	}(time.Now())

	return lm.cache.ZSetDel(ctx, key, values...)
}

func (lm *loggingMiddleware) ZSetSize(ctx context.Context, key string) (size int64, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "Sorted set size", begin, err,
			slog.String("key", key),
			slog.Int64("size", size),
		)
	}(time.Now())

	return lm.cache.ZSetSize(ctx, key)
}

func (lm *loggingMiddleware) ZSetRange(ctx context.Context, key string, start, end int64) (vals kvcache.Values, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "Sorted set range", begin, err, rangeAttrs(key, start, end, vals)...)
	}(time.Now())

	return lm.cache.ZSetRange(ctx, key, start, end)
}

func (lm *loggingMiddleware) ZSetRevRange(ctx context.Context, key string, start, end int64) (vals kvcache.Values, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "Sorted set reverse range", begin, err, rangeAttrs(key, start, end, vals)...)
	}(time.Now())

	return lm.cache.ZSetRevRange(ctx, key, start, end)
}

func (lm *loggingMiddleware) RPush(ctx context.Context, key string, value any) (length int64, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Push to list", begin, err,
			slog.String("key", key),
			slog.Int64("length", length),
		)
	}(time.Now())

	return lm.cache.RPush(ctx, key, value)
}

func (lm *loggingMiddleware) LLen(ctx context.Context, key string) (length int64, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "List length", begin, err,
			slog.String("key", key),
			slog.Int64("length", length),
		)
	}(time.Now())

	return lm.cache.LLen(ctx, key)
}

func (lm *loggingMiddleware) LRange(ctx context.Context, key string, start, end int64) (vals kvcache.Values, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelDebug, "List range", begin, err, rangeAttrs(key, start, end, vals)...)
	}(time.Now())

	return lm.cache.LRange(ctx, key, start, end)
}

func (lm *loggingMiddleware) LPop(ctx context.Context, key string, dst any) (err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Pop from list", begin, err, slog.String("key", key))
	}(time.Now())

	return lm.cache.LPop(ctx, key, dst)
}

func (lm *loggingMiddleware) LRemove(ctx context.Context, key string, value any) (removed int64, err error) {
	defer func(begin time.Time) {
		lm.log(ctx, slog.LevelInfo, "Remove from list", begin, err,
			slog.String("key", key),
			slog.Int64("removed", removed),
		)
	}(time.Now())

	return lm.cache.LRemove(ctx, key, value)
}

func (lm *loggingMiddleware) log(ctx context.Context, level slog.Level, msg string, begin time.Time, err error, attrs ...any) {
	args := append([]any{slog.String("duration", time.Since(begin).String())}, attrs...)
	switch {
	case err == nil:
		lm.logger.Log(ctx, level, msg+" completed successfully", args...)
	case errors.Contains(err, kvcache.ErrNotFound):
		lm.logger.Debug(msg+" found no entry", args...)
	default:
		args = append(args, slog.String("error", err.Error()))
		lm.logger.Warn(msg+" failed", args...)
	}
}

func rangeAttrs(key string, start, end int64, vals kvcache.Values) []any {
	return []any{
		slog.String("key", key),
		slog.Int64("start", start),
		slog.Int64("end", end),
		slog.Int("count", vals.Len()),
	}
}
