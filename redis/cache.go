// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package redis contains the Redis implementation of the cache facade.
package redis

import (
	"context"
	"strings"
	"time"

	"github.com/absmach/kvcache"
	"github.com/absmach/kvcache/codec"
	"github.com/absmach/kvcache/pkg/errors"
	"github.com/go-redis/redis/v8"
)

const keySeparator = ":"

// globEscaper quotes the characters KEYS treats as pattern syntax.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

var _ kvcache.Cache = (*cache)(nil)

// Option configures the Redis cache.
type Option func(*cache)

// WithCodec sets the codec used for stored payloads.
func WithCodec(c codec.Codec) Option {
	return func(rc *cache) {
		if c != nil {
			rc.codec = c
		}
	}
}

// WithPrefix namespaces every key as "prefix:key".
func WithPrefix(prefix string) Option {
	return func(rc *cache) {
		rc.prefix = prefix
	}
}

type cache struct {
	client redis.UniversalClient
	codec  codec.Codec
	prefix string
}

// NewCache returns the Redis cache facade. The client is owned by the
// caller and is never closed by the cache.
func NewCache(client redis.UniversalClient, opts ...Option) kvcache.Cache {
	rc := &cache{
		client: client,
		codec:  codec.JSON,
	}
	for _, opt := range opts {
		opt(rc)
	}

	return rc
}

func (rc *cache) SetValue(ctx context.Context, key string, value any) error {
	return rc.set(ctx, key, value, 0)
}

func (rc *cache) SetValueTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	// Negative expiration has a special meaning in go-redis (KEEPTTL).
	if ttl < 0 {
		ttl = 0
	}

	return rc.set(ctx, key, value, ttl)
}

func (rc *cache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := rc.encode(value)
	if err != nil {
		return err
	}

	return rc.client.Set(ctx, rc.key(key), data, ttl).Err()
}

func (rc *cache) SetMapValue(ctx context.Context, key, field string, value any) error {
	data, err := rc.encode(value)
	if err != nil {
		return err
	}

	return rc.client.HSet(ctx, rc.key(key), field, data).Err()
}

func (rc *cache) SetMapValueTTL(ctx context.Context, key, field string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return rc.SetMapValue(ctx, key, field, value)
	}

	data, err := rc.encode(value)
	if err != nil {
		return err
	}

	k := rc.key(key)
	_, err = rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, field, data)
		pipe.PExpire(ctx, k, ttl)
		return nil
	})

	return err
}

func (rc *cache) GetValue(ctx context.Context, key string, dst any) error {
	data, err := rc.client.Get(ctx, rc.key(key)).Bytes()
	if err != nil {
		return notFound(err)
	}

	return rc.decode(data, dst)
}

func (rc *cache) GetMapValue(ctx context.Context, key, field string, dst any) error {
	data, err := rc.client.HGet(ctx, rc.key(key), field).Bytes()
	if err != nil {
		return notFound(err)
	}

	return rc.decode(data, dst)
}

func (rc *cache) DelMapValue(ctx context.Context, key, field string) error {
	return rc.client.HDel(ctx, rc.key(key), field).Err()
}

func (rc *cache) DelValue(ctx context.Context, key string) error {
	return rc.client.Del(ctx, rc.key(key)).Err()
}

func (rc *cache) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return rc.client.PExpire(ctx, rc.key(key), ttl).Result()
}

func (rc *cache) MapKeys(ctx context.Context, key string) ([]string, error) {
	return rc.client.HKeys(ctx, rc.key(key)).Result()
}

func (rc *cache) HasKey(ctx context.Context, key string) (bool, error) {
	n, err := rc.client.Exists(ctx, rc.key(key)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (rc *cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	if rc.prefix != "" {
		pattern = globEscaper.Replace(rc.prefix) + keySeparator + pattern
	}
	keys, err := rc.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, err
	}
	if rc.prefix == "" {
		return keys, nil
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, rc.prefix+keySeparator)
	}

	return keys, nil
}

func (rc *cache) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	return rc.client.IncrBy(ctx, rc.key(key), delta).Result()
}

func (rc *cache) ZSetAdd(ctx context.Context, key string, value any, score float64) (bool, error) {
	data, err := rc.encode(value)
	if err != nil {
		return false, err
	}

	n, err := rc.client.ZAdd(ctx, rc.key(key), &redis.Z{Score: score, Member: data}).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (rc *cache) ZSetDel(ctx context.Context, key string, values ...any) (int64, error) {
	members, err := rc.encodeAll(values)
	if err != nil {
		return 0, err
	}

	return rc.client.ZRem(ctx, rc.key(key), members...).Result()
}

func (rc *cache) ZSetSize(ctx context.Context, key string) (int64, error) {
	return rc.client.ZCard(ctx, rc.key(key)).Result()
}

func (rc *cache) ZSetRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	return rc.values(rc.client.ZRange(ctx, rc.key(key), start, end))
}

func (rc *cache) ZSetRevRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	return rc.values(rc.client.ZRevRange(ctx, rc.key(key), start, end))
}

func (rc *cache) RPush(ctx context.Context, key string, value any) (int64, error) {
	data, err := rc.encode(value)
	if err != nil {
		return 0, err
	}

	return rc.client.RPush(ctx, rc.key(key), data).Result()
}

func (rc *cache) LLen(ctx context.Context, key string) (int64, error) {
	return rc.client.LLen(ctx, rc.key(key)).Result()
}

func (rc *cache) LRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	return rc.values(rc.client.LRange(ctx, rc.key(key), start, end))
}

func (rc *cache) LPop(ctx context.Context, key string, dst any) error {
	data, err := rc.client.LPop(ctx, rc.key(key)).Bytes()
	if err != nil {
		return notFound(err)
	}

	return rc.decode(data, dst)
}

func (rc *cache) LRemove(ctx context.Context, key string, value any) (int64, error) {
	data, err := rc.encode(value)
	if err != nil {
		return 0, err
	}

	// Count 0 removes every occurrence.
	return rc.client.LRem(ctx, rc.key(key), 0, data).Result()
}

func (rc *cache) key(k string) string {
	if rc.prefix == "" {
		return k
	}

	return rc.prefix + keySeparator + k
}

func (rc *cache) encode(v any) ([]byte, error) {
	data, err := rc.codec.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(kvcache.ErrEncode, err)
	}

	return data, nil
}

func (rc *cache) encodeAll(vs []any) ([]interface{}, error) {
	res := make([]interface{}, len(vs))
	for i, v := range vs {
		data, err := rc.encode(v)
		if err != nil {
			return nil, err
		}
		res[i] = data
	}

	return res, nil
}

func (rc *cache) decode(data []byte, dst any) error {
	if err := rc.codec.Unmarshal(data, dst); err != nil {
		return errors.Wrap(kvcache.ErrDecode, err)
	}

	return nil
}

func (rc *cache) values(cmd *redis.StringSliceCmd) (kvcache.Values, error) {
	res, err := cmd.Result()
	if err != nil {
		return kvcache.Values{}, err
	}
	items := make([][]byte, len(res))
	for i, r := range res {
		items[i] = []byte(r)
	}

	return kvcache.NewValues(items, rc.codec), nil
}

// Redis returns Nil Reply when the key, field or element does not exist.
func notFound(err error) error {
	if err == redis.Nil {
		return kvcache.ErrNotFound
	}

	return err
}
