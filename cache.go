// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package kvcache contains the cache facade contract: scalar values,
// hashes, sorted sets and lists stored in Redis, with optional expiration.
package kvcache

import (
	"context"
	"time"

	"github.com/absmach/kvcache/pkg/errors"
)

var (
	// ErrNotFound indicates the requested key, field or list element does not exist.
	ErrNotFound = errors.New("cache entry not found")

	// ErrEncode indicates failure to encode a value before storing it.
	ErrEncode = errors.New("failed to encode cache value")

	// ErrDecode indicates a stored payload could not be decoded into the requested type.
	ErrDecode = errors.New("failed to decode cache value")
)

// Cache is the cache facade. Every method is a single round trip to the
// server. Errors returned by the underlying client are passed through
// unchanged, except for a missing entry which is reported as ErrNotFound.
type Cache interface {
	// SetValue overwrites the value stored at key.
	SetValue(ctx context.Context, key string, value any) error

	// SetValueTTL overwrites the value stored at key and sets its time to live.
	// A non-positive ttl stores the value without expiration.
	SetValueTTL(ctx context.Context, key string, value any, ttl time.Duration) error

	// SetMapValue sets field in the hash stored at key.
	SetMapValue(ctx context.Context, key, field string, value any) error

	// SetMapValueTTL sets field in the hash stored at key and sets the
	// time to live of the whole hash. A non-positive ttl sets the field and
	// leaves the expiration of the hash unchanged.
	SetMapValueTTL(ctx context.Context, key, field string, value any, ttl time.Duration) error

	// GetValue decodes the value stored at key into dst.
	GetValue(ctx context.Context, key string, dst any) error

	// GetMapValue decodes the hash field value into dst.
	GetMapValue(ctx context.Context, key, field string, dst any) error

	// DelMapValue removes field from the hash stored at key.
	DelMapValue(ctx context.Context, key, field string) error

	// DelValue removes key.
	DelValue(ctx context.Context, key string) error

	// Expire sets or refreshes the time to live of key. It reports
	// whether the key exists.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// MapKeys returns the field names of the hash stored at key.
	MapKeys(ctx context.Context, key string) ([]string, error)

	// HasKey reports whether key exists.
	HasKey(ctx context.Context, key string) (bool, error)

	// Keys returns all keys matching the glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Incr atomically increments the integer stored at key by delta and
	// returns the new value. A missing key starts at 0.
	Incr(ctx context.Context, key string, delta int64) (int64, error)

	// ZSetAdd adds value to the sorted set stored at key, or updates its
	// score. It reports whether a new member was added.
	ZSetAdd(ctx context.Context, key string, value any, score float64) (bool, error)

	// ZSetDel removes values from the sorted set and returns the number removed.
	ZSetDel(ctx context.Context, key string, values ...any) (int64, error)

	// ZSetSize returns the cardinality of the sorted set.
	ZSetSize(ctx context.Context, key string) (int64, error)

	// ZSetRange returns members ranked start to end inclusive, ascending by score.
	ZSetRange(ctx context.Context, key string, start, end int64) (Values, error)

	// ZSetRevRange returns members ranked start to end inclusive, descending by score.
	ZSetRevRange(ctx context.Context, key string, start, end int64) (Values, error)

	// RPush appends value to the tail of the list and returns the new length.
	RPush(ctx context.Context, key string, value any) (int64, error)

	// LLen returns the length of the list.
	LLen(ctx context.Context, key string) (int64, error)

	// LRange returns list elements start to end inclusive.
	LRange(ctx context.Context, key string, start, end int64) (Values, error)

	// LPop removes the head of the list and decodes it into dst.
	LPop(ctx context.Context, key string, dst any) error

	// LRemove removes every list element equal to value and returns the
	// number removed.
	LRemove(ctx context.Context, key string, value any) (int64, error)
}

// Decoder turns a stored payload back into a Go value.
type Decoder interface {
	Unmarshal(data []byte, v any) error
}

// Values is an ordered list of stored payloads returned by range queries.
type Values struct {
	items   [][]byte
	decoder Decoder
}

// NewValues wraps raw payloads decoded with decoder.
func NewValues(items [][]byte, decoder Decoder) Values {
	return Values{items: items, decoder: decoder}
}

// Len returns the number of payloads.
func (v Values) Len() int {
	return len(v.items)
}

// Raw returns the payload at index i as stored.
func (v Values) Raw(i int) []byte {
	return v.items[i]
}

// Decode decodes the payload at index i into dst.
func (v Values) Decode(i int, dst any) error {
	if err := v.decoder.Unmarshal(v.items[i], dst); err != nil {
		return errors.Wrap(ErrDecode, err)
	}

	return nil
}
