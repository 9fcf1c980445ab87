// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"time"

	"github.com/absmach/kvcache"
	"github.com/stretchr/testify/mock"
)

var _ kvcache.Cache = (*Cache)(nil)

// Cache is a testify mock of the cache facade. Decoding methods copy the
// value returned by the expectation into dst when dst is a *any.
type Cache struct {
	mock.Mock
}

func (m *Cache) SetValue(ctx context.Context, key string, value any) error {
	ret := m.Called(ctx, key, value)

	return ret.Error(0)
}

func (m *Cache) SetValueTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	ret := m.Called(ctx, key, value, ttl)

	return ret.Error(0)
}

func (m *Cache) SetMapValue(ctx context.Context, key, field string, value any) error {
	ret := m.Called(ctx, key, field, value)

	return ret.Error(0)
}

func (m *Cache) SetMapValueTTL(ctx context.Context, key, field string, value any, ttl time.Duration) error {
	ret := m.Called(ctx, key, field, value, ttl)

	return ret.Error(0)
}

func (m *Cache) GetValue(ctx context.Context, key string, dst any) error {
	ret := m.Called(ctx, key, dst)
	fill(dst, ret.Get(0))

	return ret.Error(1)
}

func (m *Cache) GetMapValue(ctx context.Context, key, field string, dst any) error {
	ret := m.Called(ctx, key, field, dst)
	fill(dst, ret.Get(0))

	return ret.Error(1)
}

func (m *Cache) DelMapValue(ctx context.Context, key, field string) error {
	ret := m.Called(ctx, key, field)

	return ret.Error(0)
}

func (m *Cache) DelValue(ctx context.Context, key string) error {
	ret := m.Called(ctx, key)

	return ret.Error(0)
}

func (m *Cache) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ret := m.Called(ctx, key, ttl)

	return ret.Bool(0), ret.Error(1)
}

func (m *Cache) MapKeys(ctx context.Context, key string) ([]string, error) {
	ret := m.Called(ctx, key)

	return strings(ret.Get(0)), ret.Error(1)
}

func (m *Cache) HasKey(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)

	return ret.Bool(0), ret.Error(1)
}

func (m *Cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	ret := m.Called(ctx, pattern)

	return strings(ret.Get(0)), ret.Error(1)
}

func (m *Cache) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	ret := m.Called(ctx, key, delta)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *Cache) ZSetAdd(ctx context.Context, key string, value any, score float64) (bool, error) {
	ret := m.Called(ctx, key, value, score)

	return ret.Bool(0), ret.Error(1)
}

func (m *Cache) ZSetDel(ctx context.Context, key string, values ...any) (int64, error) {
	ret := m.Called(ctx, key, values)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *Cache) ZSetSize(ctx context.Context, key string) (int64, error) {
	ret := m.Called(ctx, key)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *Cache) ZSetRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	ret := m.Called(ctx, key, start, end)

	return ret.Get(0).(kvcache.Values), ret.Error(1)
}

func (m *Cache) ZSetRevRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	ret := m.Called(ctx, key, start, end)

	return ret.Get(0).(kvcache.Values), ret.Error(1)
}

func (m *Cache) RPush(ctx context.Context, key string, value any) (int64, error) {
	ret := m.Called(ctx, key, value)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *Cache) LLen(ctx context.Context, key string) (int64, error) {
	ret := m.Called(ctx, key)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *Cache) LRange(ctx context.Context, key string, start, end int64) (kvcache.Values, error) {
	ret := m.Called(ctx, key, start, end)

	return ret.Get(0).(kvcache.Values), ret.Error(1)
}

func (m *Cache) LPop(ctx context.Context, key string, dst any) error {
	ret := m.Called(ctx, key, dst)
	fill(dst, ret.Get(0))

	return ret.Error(1)
}

func (m *Cache) LRemove(ctx context.Context, key string, value any) (int64, error) {
	ret := m.Called(ctx, key, value)

	return ret.Get(0).(int64), ret.Error(1)
}

func fill(dst, val any) {
	if p, ok := dst.(*any); ok && val != nil {
		*p = val
	}
}

func strings(v any) []string {
	if v == nil {
		return nil
	}

	return v.([]string)
}
