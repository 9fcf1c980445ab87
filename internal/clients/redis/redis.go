// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package redis connects to the Redis server backing the cache.
package redis

import (
	"context"
	"time"

	"github.com/absmach/kvcache/pkg/errors"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
)

// ErrConnect indicates the server did not answer a ping before the
// connect timeout elapsed.
var ErrConnect = errors.New("failed to connect to redis")

// Config defines the options used to reach Redis. Fields are read from
// the environment with the KV_ prefix.
type Config struct {
	URL            string        `env:"REDIS_URL"             envDefault:"redis://localhost:6379/0"`
	Prefix         string        `env:"CACHE_PREFIX"          envDefault:""`
	Codec          string        `env:"CACHE_CODEC"           envDefault:"json"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Connect creates a Redis client and pings it, retrying with exponential
// backoff until cfg.ConnectTimeout elapses.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.ConnectTimeout
	ping := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		client.Close()
		return nil, errors.Wrap(ErrConnect, err)
	}

	return client, nil
}
