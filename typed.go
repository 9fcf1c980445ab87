// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package kvcache

import "context"

// Get returns the value stored at key decoded as T.
func Get[T any](ctx context.Context, c Cache, key string) (T, error) {
	var v T
	err := c.GetValue(ctx, key, &v)

	return v, err
}

// GetMap returns the hash field value decoded as T.
func GetMap[T any](ctx context.Context, c Cache, key, field string) (T, error) {
	var v T
	err := c.GetMapValue(ctx, key, field, &v)

	return v, err
}

// LPop removes the head of the list and returns it decoded as T.
func LPop[T any](ctx context.Context, c Cache, key string) (T, error) {
	var v T
	err := c.LPop(ctx, key, &v)

	return v, err
}

// LRange returns list elements start to end inclusive decoded as T.
func LRange[T any](ctx context.Context, c Cache, key string, start, end int64) ([]T, error) {
	vals, err := c.LRange(ctx, key, start, end)
	if err != nil {
		return nil, err
	}

	return DecodeAll[T](vals)
}

// ZSetRange returns sorted set members in ascending score order decoded as T.
func ZSetRange[T any](ctx context.Context, c Cache, key string, start, end int64) ([]T, error) {
	vals, err := c.ZSetRange(ctx, key, start, end)
	if err != nil {
		return nil, err
	}

	return DecodeAll[T](vals)
}

// ZSetRevRange returns sorted set members in descending score order decoded as T.
func ZSetRevRange[T any](ctx context.Context, c Cache, key string, start, end int64) ([]T, error) {
	vals, err := c.ZSetRevRange(ctx, key, start, end)
	if err != nil {
		return nil, err
	}

	return DecodeAll[T](vals)
}

// DecodeAll decodes every payload in vals as T. It stops at the first
// payload that does not decode.
func DecodeAll[T any](vals Values) ([]T, error) {
	res := make([]T, vals.Len())
	for i := range res {
		if err := vals.Decode(i, &res[i]); err != nil {
			return nil, err
		}
	}

	return res, nil
}
