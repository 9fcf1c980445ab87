// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package redis_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/absmach/kvcache"
	"github.com/absmach/kvcache/codec"
	"github.com/absmach/kvcache/internal/testsutil"
	"github.com/absmach/kvcache/pkg/errors"
	"github.com/absmach/kvcache/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string `json:"name" msgpack:"name" cbor:"name"`
	Email string `json:"email" msgpack:"email" cbor:"email"`
}

func TestSetGetValue(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "value")
	err := c.SetValue(ctx, key, "first")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))

	structKey := testsutil.GenerateKey(t, "value")
	p := profile{Name: "jane", Email: "jane@example.com"}
	err = c.SetValue(ctx, structKey, p)
	require.Nil(t, err, fmt.Sprintf("set struct value: unexpected error %s", err))

	cases := []struct {
		desc string
		key  string
		set  any
		val  string
		err  error
	}{
		{
			desc: "get existing value",
			key:  key,
			val:  "first",
			err:  nil,
		},
		{
			desc: "get overwritten value",
			key:  key,
			set:  "second",
			val:  "second",
			err:  nil,
		},
		{
			desc: "get non-existing value",
			key:  testsutil.GenerateKey(t, "value"),
			val:  "",
			err:  kvcache.ErrNotFound,
		},
		{
			desc: "get struct value as string",
			key:  structKey,
			val:  "",
			err:  kvcache.ErrDecode,
		},
	}

	for _, tc := range cases {
		if tc.set != nil {
			err := c.SetValue(ctx, tc.key, tc.set)
			require.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		}
		val, err := kvcache.Get[string](ctx, c, tc.key)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.err, err))
		assert.Equal(t, tc.val, val, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.val, val))
	}

	got, err := kvcache.Get[profile](ctx, c, structKey)
	assert.Nil(t, err, fmt.Sprintf("get struct value: unexpected error %s", err))
	assert.Equal(t, p, got)
}

func TestSetValueTTL(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "ttl")
	err := c.SetValueTTL(ctx, key, "short lived", 200*time.Millisecond)
	require.Nil(t, err, fmt.Sprintf("set value with ttl: unexpected error %s", err))

	ok, err := c.HasKey(ctx, key)
	assert.Nil(t, err, fmt.Sprintf("has key: unexpected error %s", err))
	assert.True(t, ok, "key should exist right after set")

	ttl, err := redisClient.PTTL(ctx, key).Result()
	assert.Nil(t, err, fmt.Sprintf("pttl: unexpected error %s", err))
	assert.True(t, ttl > 0 && ttl <= 200*time.Millisecond, fmt.Sprintf("expected ttl in (0, 200ms] got %s", ttl))

	assert.Eventually(t, func() bool {
		ok, err := c.HasKey(ctx, key)
		return err == nil && !ok
	}, 2*time.Second, 50*time.Millisecond, "key should expire")

	persistent := testsutil.GenerateKey(t, "ttl")
	err = c.SetValueTTL(ctx, persistent, "forever", -time.Second)
	require.Nil(t, err, fmt.Sprintf("set value with negative ttl: unexpected error %s", err))
	ttl, err = redisClient.PTTL(ctx, persistent).Result()
	assert.Nil(t, err, fmt.Sprintf("pttl: unexpected error %s", err))
	assert.Equal(t, time.Duration(-1), ttl, "negative ttl should store the key without expiration")
}

func TestMapValue(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "map")
	err := c.SetMapValue(ctx, key, "name", "jane")
	require.Nil(t, err, fmt.Sprintf("set map value: unexpected error %s", err))
	err = c.SetMapValue(ctx, key, "age", 33)
	require.Nil(t, err, fmt.Sprintf("set map value: unexpected error %s", err))

	name, err := kvcache.GetMap[string](ctx, c, key, "name")
	assert.Nil(t, err, fmt.Sprintf("get map value: unexpected error %s", err))
	assert.Equal(t, "jane", name)

	age, err := kvcache.GetMap[int](ctx, c, key, "age")
	assert.Nil(t, err, fmt.Sprintf("get map value: unexpected error %s", err))
	assert.Equal(t, 33, age)

	fields, err := c.MapKeys(ctx, key)
	assert.Nil(t, err, fmt.Sprintf("map keys: unexpected error %s", err))
	sort.Strings(fields)
	assert.Equal(t, []string{"age", "name"}, fields)

	err = c.DelMapValue(ctx, key, "name")
	assert.Nil(t, err, fmt.Sprintf("del map value: unexpected error %s", err))

	cases := []struct {
		desc  string
		key   string
		field string
		err   error
	}{
		{
			desc:  "get removed field",
			key:   key,
			field: "name",
			err:   kvcache.ErrNotFound,
		},
		{
			desc:  "get field of non-existing hash",
			key:   testsutil.GenerateKey(t, "map"),
			field: "name",
			err:   kvcache.ErrNotFound,
		},
		{
			desc:  "get remaining field",
			key:   key,
			field: "age",
			err:   nil,
		},
	}

	for _, tc := range cases {
		var v any
		err := c.GetMapValue(ctx, tc.key, tc.field, &v)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.err, err))
	}

	fields, err = c.MapKeys(ctx, testsutil.GenerateKey(t, "map"))
	assert.Nil(t, err, fmt.Sprintf("map keys of missing hash: unexpected error %s", err))
	assert.Empty(t, fields)
}

func TestSetMapValueTTL(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "map")
	err := c.SetMapValueTTL(ctx, key, "token", "abc", time.Minute)
	require.Nil(t, err, fmt.Sprintf("set map value with ttl: unexpected error %s", err))

	token, err := kvcache.GetMap[string](ctx, c, key, "token")
	assert.Nil(t, err, fmt.Sprintf("get map value: unexpected error %s", err))
	assert.Equal(t, "abc", token)

	ttl, err := redisClient.PTTL(ctx, key).Result()
	assert.Nil(t, err, fmt.Sprintf("pttl: unexpected error %s", err))
	assert.True(t, ttl > 0 && ttl <= time.Minute, fmt.Sprintf("expected ttl in (0, 1m] got %s", ttl))

	noTTL := testsutil.GenerateKey(t, "map")
	err = c.SetMapValueTTL(ctx, noTTL, "token", "abc", 0)
	require.Nil(t, err, fmt.Sprintf("set map value with zero ttl: unexpected error %s", err))
	ttl, err = redisClient.PTTL(ctx, noTTL).Result()
	assert.Nil(t, err, fmt.Sprintf("pttl: unexpected error %s", err))
	assert.Equal(t, time.Duration(-1), ttl, "zero ttl should store the hash without expiration")

	err = c.SetMapValueTTL(ctx, key, "scope", "read", 0)
	require.Nil(t, err, fmt.Sprintf("set map value with zero ttl: unexpected error %s", err))
	ttl, err = redisClient.PTTL(ctx, key).Result()
	assert.Nil(t, err, fmt.Sprintf("pttl: unexpected error %s", err))
	assert.True(t, ttl > 0 && ttl <= time.Minute, fmt.Sprintf("zero ttl should keep the hash expiration, got %s", ttl))
}

func TestDelValue(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "del")
	err := c.SetValue(ctx, key, "value")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))

	cases := []struct {
		desc string
		key  string
	}{
		{
			desc: "remove existing key",
			key:  key,
		},
		{
			desc: "remove non-existing key",
			key:  testsutil.GenerateKey(t, "del"),
		},
	}

	for _, tc := range cases {
		err := c.DelValue(ctx, tc.key)
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		ok, err := c.HasKey(ctx, tc.key)
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		assert.False(t, ok, fmt.Sprintf("%s: key should not exist", tc.desc))
	}
}

func TestExpire(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "expire")
	err := c.SetValue(ctx, key, "value")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))

	cases := []struct {
		desc   string
		key    string
		exists bool
	}{
		{
			desc:   "expire existing key",
			key:    key,
			exists: true,
		},
		{
			desc:   "expire non-existing key",
			key:    testsutil.GenerateKey(t, "expire"),
			exists: false,
		},
	}

	for _, tc := range cases {
		ok, err := c.Expire(ctx, tc.key, time.Hour)
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		assert.Equal(t, tc.exists, ok, fmt.Sprintf("%s: expected %t got %t", tc.desc, tc.exists, ok))
	}

	ttl, err := redisClient.PTTL(ctx, key).Result()
	assert.Nil(t, err, fmt.Sprintf("pttl: unexpected error %s", err))
	assert.True(t, ttl > 59*time.Minute, fmt.Sprintf("expected ttl close to 1h got %s", ttl))
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	prefix := testsutil.GenerateUUID(t)
	c := redis.NewCache(redisClient, redis.WithPrefix(prefix))

	for _, k := range []string{"user:1", "user:2", "order:1"} {
		err := c.SetValue(ctx, k, k)
		require.Nil(t, err, fmt.Sprintf("set value %s: unexpected error %s", k, err))
	}

	cases := []struct {
		desc    string
		pattern string
		keys    []string
	}{
		{
			desc:    "match all keys under prefix",
			pattern: "*",
			keys:    []string{"order:1", "user:1", "user:2"},
		},
		{
			desc:    "match user keys",
			pattern: "user:*",
			keys:    []string{"user:1", "user:2"},
		},
		{
			desc:    "match nothing",
			pattern: "session:*",
			keys:    []string{},
		},
	}

	for _, tc := range cases {
		keys, err := c.Keys(ctx, tc.pattern)
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		sort.Strings(keys)
		assert.ElementsMatch(t, tc.keys, keys, fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.keys, keys))
	}

	raw, err := redisClient.Exists(ctx, prefix+":user:1").Result()
	assert.Nil(t, err, fmt.Sprintf("exists: unexpected error %s", err))
	assert.Equal(t, int64(1), raw, "prefixed key should be stored under prefix")
}

func TestKeysPrefixWithGlobCharacters(t *testing.T) {
	ctx := context.Background()
	base := testsutil.GenerateUUID(t)
	globbed := redis.NewCache(redisClient, redis.WithPrefix(base+"[ab]*?"))
	sibling := redis.NewCache(redisClient, redis.WithPrefix(base+"ax"))
	other := redis.NewCache(redisClient, redis.WithPrefix(base+"b-z"))

	err := globbed.SetValue(ctx, "user:1", "own")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))
	err = sibling.SetValue(ctx, "user:2", "sibling")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))
	err = other.SetValue(ctx, "user:3", "other")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))

	keys, err := globbed.Keys(ctx, "*")
	assert.Nil(t, err, fmt.Sprintf("keys: unexpected error %s", err))
	assert.Equal(t, []string{"user:1"}, keys, "keys of other prefixes should not match")

	keys, err = sibling.Keys(ctx, "user:*")
	assert.Nil(t, err, fmt.Sprintf("keys: unexpected error %s", err))
	assert.Equal(t, []string{"user:2"}, keys)
}

func TestIncr(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "counter")

	cases := []struct {
		desc  string
		delta int64
		value int64
	}{
		{
			desc:  "increment non-existing key",
			delta: 5,
			value: 5,
		},
		{
			desc:  "increment existing key",
			delta: 5,
			value: 10,
		},
		{
			desc:  "decrement with negative delta",
			delta: -3,
			value: 7,
		},
	}

	for _, tc := range cases {
		val, err := c.Incr(ctx, key, tc.delta)
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		assert.Equal(t, tc.value, val, fmt.Sprintf("%s: expected %d got %d", tc.desc, tc.value, val))
	}

	counter, err := kvcache.Get[int64](ctx, c, key)
	assert.Nil(t, err, fmt.Sprintf("get counter: unexpected error %s", err))
	assert.Equal(t, int64(7), counter)

	textKey := testsutil.GenerateKey(t, "counter")
	err = c.SetValue(ctx, textKey, "text")
	require.Nil(t, err, fmt.Sprintf("set value: unexpected error %s", err))
	_, err = c.Incr(ctx, textKey, 1)
	assert.NotNil(t, err, "incrementing a non-integer value should fail")
	assert.False(t, errors.Contains(err, kvcache.ErrNotFound), "client errors should pass through unchanged")
}

func TestZSet(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "zset")

	added, err := c.ZSetAdd(ctx, key, "a", 1.0)
	assert.Nil(t, err, fmt.Sprintf("zset add: unexpected error %s", err))
	assert.True(t, added, "new member should be added")
	added, err = c.ZSetAdd(ctx, key, "b", 2.0)
	assert.Nil(t, err, fmt.Sprintf("zset add: unexpected error %s", err))
	assert.True(t, added, "new member should be added")

	asc, err := kvcache.ZSetRange[string](ctx, c, key, 0, -1)
	assert.Nil(t, err, fmt.Sprintf("zset range: unexpected error %s", err))
	assert.Equal(t, []string{"a", "b"}, asc)

	desc, err := kvcache.ZSetRevRange[string](ctx, c, key, 0, -1)
	assert.Nil(t, err, fmt.Sprintf("zset rev range: unexpected error %s", err))
	assert.Equal(t, []string{"b", "a"}, desc)

	added, err = c.ZSetAdd(ctx, key, "a", 3.0)
	assert.Nil(t, err, fmt.Sprintf("zset add: unexpected error %s", err))
	assert.False(t, added, "updating a score should not add a member")

	asc, err = kvcache.ZSetRange[string](ctx, c, key, 0, -1)
	assert.Nil(t, err, fmt.Sprintf("zset range: unexpected error %s", err))
	assert.Equal(t, []string{"b", "a"}, asc)

	first, err := kvcache.ZSetRange[string](ctx, c, key, 0, 0)
	assert.Nil(t, err, fmt.Sprintf("zset range: unexpected error %s", err))
	assert.Equal(t, []string{"b"}, first)

	size, err := c.ZSetSize(ctx, key)
	assert.Nil(t, err, fmt.Sprintf("zset size: unexpected error %s", err))
	assert.Equal(t, int64(2), size)

	removed, err := c.ZSetDel(ctx, key, "a", "missing")
	assert.Nil(t, err, fmt.Sprintf("zset del: unexpected error %s", err))
	assert.Equal(t, int64(1), removed)

	size, err = c.ZSetSize(ctx, key)
	assert.Nil(t, err, fmt.Sprintf("zset size: unexpected error %s", err))
	assert.Equal(t, int64(1), size)

	empty, err := c.ZSetRange(ctx, testsutil.GenerateKey(t, "zset"), 0, -1)
	assert.Nil(t, err, fmt.Sprintf("zset range of missing key: unexpected error %s", err))
	assert.Equal(t, 0, empty.Len())
}

func TestList(t *testing.T) {
	for _, cd := range []codec.Codec{codec.JSON, codec.MsgPack, codec.CBOR} {
		t.Run(cd.Name(), func(t *testing.T) {
			c := redis.NewCache(redisClient, redis.WithCodec(cd))
			ctx := context.Background()

			key := testsutil.GenerateKey(t, "list")

			n, err := c.RPush(ctx, key, "x")
			assert.Nil(t, err, fmt.Sprintf("rpush: unexpected error %s", err))
			assert.Equal(t, int64(1), n)
			n, err = c.RPush(ctx, key, "y")
			assert.Nil(t, err, fmt.Sprintf("rpush: unexpected error %s", err))
			assert.Equal(t, int64(2), n)

			items, err := kvcache.LRange[string](ctx, c, key, 0, -1)
			assert.Nil(t, err, fmt.Sprintf("lrange: unexpected error %s", err))
			assert.Equal(t, []string{"x", "y"}, items)

			head, err := kvcache.LPop[string](ctx, c, key)
			assert.Nil(t, err, fmt.Sprintf("lpop: unexpected error %s", err))
			assert.Equal(t, "x", head)

			length, err := c.LLen(ctx, key)
			assert.Nil(t, err, fmt.Sprintf("llen: unexpected error %s", err))
			assert.Equal(t, int64(1), length)

			for i := 0; i < 3; i++ {
				_, err := c.RPush(ctx, key, "z")
				require.Nil(t, err, fmt.Sprintf("rpush: unexpected error %s", err))
			}
			removed, err := c.LRemove(ctx, key, "z")
			assert.Nil(t, err, fmt.Sprintf("lremove: unexpected error %s", err))
			assert.Equal(t, int64(3), removed)

			items, err = kvcache.LRange[string](ctx, c, key, 0, -1)
			assert.Nil(t, err, fmt.Sprintf("lrange: unexpected error %s", err))
			assert.Equal(t, []string{"y"}, items)

			_, err = kvcache.LPop[string](ctx, c, key)
			assert.Nil(t, err, fmt.Sprintf("lpop: unexpected error %s", err))
			_, err = kvcache.LPop[string](ctx, c, key)
			assert.True(t, errors.Contains(err, kvcache.ErrNotFound), fmt.Sprintf("lpop on empty list: expected %s got %s", kvcache.ErrNotFound, err))
		})
	}
}

func TestObjectMembers(t *testing.T) {
	member := map[string]any{
		"id":     "job-1",
		"queue":  "default",
		"owner":  "alice",
		"tries":  3,
		"region": "eu",
		"tags":   []string{"a", "b"},
	}

	for _, cd := range []codec.Codec{codec.JSON, codec.MsgPack, codec.CBOR} {
		t.Run(cd.Name(), func(t *testing.T) {
			c := redis.NewCache(redisClient, redis.WithCodec(cd))
			ctx := context.Background()

			zkey := testsutil.GenerateKey(t, "zset")
			added, err := c.ZSetAdd(ctx, zkey, member, 1.0)
			assert.Nil(t, err, fmt.Sprintf("zset add: unexpected error %s", err))
			assert.True(t, added, "new member should be added")
			for i := 0; i < 10; i++ {
				added, err = c.ZSetAdd(ctx, zkey, member, float64(i))
				assert.Nil(t, err, fmt.Sprintf("zset add: unexpected error %s", err))
				assert.False(t, added, "an equal object should update the existing member")
			}

			size, err := c.ZSetSize(ctx, zkey)
			assert.Nil(t, err, fmt.Sprintf("zset size: unexpected error %s", err))
			assert.Equal(t, int64(1), size)

			removed, err := c.ZSetDel(ctx, zkey, member)
			assert.Nil(t, err, fmt.Sprintf("zset del: unexpected error %s", err))
			assert.Equal(t, int64(1), removed)

			lkey := testsutil.GenerateKey(t, "list")
			for i := 0; i < 2; i++ {
				_, err := c.RPush(ctx, lkey, member)
				require.Nil(t, err, fmt.Sprintf("rpush: unexpected error %s", err))
			}
			removed, err = c.LRemove(ctx, lkey, member)
			assert.Nil(t, err, fmt.Sprintf("lremove: unexpected error %s", err))
			assert.Equal(t, int64(2), removed)
		})
	}
}

func TestWrongType(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	key := testsutil.GenerateKey(t, "list")
	_, err := c.RPush(ctx, key, "x")
	require.Nil(t, err, fmt.Sprintf("rpush: unexpected error %s", err))

	var v string
	err = c.GetValue(ctx, key, &v)
	assert.NotNil(t, err, "reading a list as a string value should fail")
	assert.True(t, strings.HasPrefix(err.Error(), "WRONGTYPE"), fmt.Sprintf("expected WRONGTYPE error got %s", err))
}

func TestEncodeError(t *testing.T) {
	c := redis.NewCache(redisClient)
	ctx := context.Background()

	err := c.SetValue(ctx, testsutil.GenerateKey(t, "value"), make(chan int))
	assert.True(t, errors.Contains(err, kvcache.ErrEncode), fmt.Sprintf("expected %s got %s", kvcache.ErrEncode, err))
}
