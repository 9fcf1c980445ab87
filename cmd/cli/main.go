// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains kvcache-cli main function to start the CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/absmach/kvcache"
	"github.com/absmach/kvcache/cli"
	"github.com/absmach/kvcache/codec"
	jaegerclient "github.com/absmach/kvcache/internal/clients/jaeger"
	redisclient "github.com/absmach/kvcache/internal/clients/redis"
	kvlog "github.com/absmach/kvcache/logger"
	"github.com/absmach/kvcache/middleware"
	"github.com/absmach/kvcache/pkg/prometheus"
	"github.com/absmach/kvcache/pkg/uuid"
	"github.com/absmach/kvcache/redis"
	"github.com/caarlos0/env/v7"
	goredis "github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

const (
	svcName   = "kvcache-cli"
	envPrefix = "KV_"
)

type config struct {
	LogLevel   string  `env:"KV_LOG_LEVEL"   envDefault:"error"`
	JaegerURL  string  `env:"KV_JAEGER_URL"  envDefault:""`
	TraceRatio float64 `env:"KV_TRACE_RATIO" envDefault:"1.0"`
	InstanceID string  `env:"KV_INSTANCE_ID" envDefault:""`
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := kvlog.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err)
	}

	var exitCode int
	defer kvlog.ExitWithError(&exitCode)

	if cfg.InstanceID == "" {
		if cfg.InstanceID, err = uuid.New().ID(); err != nil {
			logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
			exitCode = 1
			return
		}
	}

	redisCfg := redisclient.Config{}
	if err := env.Parse(&redisCfg, env.Options{Prefix: envPrefix}); err != nil {
		logger.Error(fmt.Sprintf("failed to load redis configuration : %s", err))
		exitCode = 1
		return
	}

	var (
		redisURL  = redisCfg.URL
		prefix    = redisCfg.Prefix
		codecName = redisCfg.Codec
		client    *goredis.Client
		shutdown  = func(context.Context) error { return nil }
	)

	// Root
	rootCmd := &cobra.Command{
		Use:          svcName,
		Short:        "Key-value cache command line client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "config" {
				return nil
			}

			raw := cli.RawOutput
			conf, err := cli.ParseConfig(redisCfg)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("redis-url") {
				conf.URL = redisURL
			}
			if flags.Changed("prefix") {
				conf.Prefix = prefix
			}
			if flags.Changed("codec") {
				conf.Codec = codecName
			}
			if flags.Changed("raw") {
				cli.RawOutput = raw
			}

			ctx := cmd.Context()
			tracer := trace.NewNoopTracerProvider().Tracer(svcName)
			if cfg.JaegerURL != "" {
				tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
				if err != nil {
					return fmt.Errorf("failed to init Jaeger: %w", err)
				}
				shutdown = tp.Shutdown
				tracer = tp.Tracer(svcName)
			}

			c, err := codec.Parse(conf.Codec)
			if err != nil {
				return err
			}

			client, err = redisclient.Connect(ctx, conf)
			if err != nil {
				return err
			}

			cli.SetCache(newCache(client, c, conf.Prefix, logger, tracer))

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if client != nil {
				if err := client.Close(); err != nil {
					logger.Error(fmt.Sprintf("failed to close redis client: %s", err))
				}
			}
			if err := shutdown(cmd.Context()); err != nil {
				logger.Error(fmt.Sprintf("error shutting down tracer provider: %s", err))
			}
		},
	}

	// API commands
	versionCmd := cli.NewVersionCmd()
	configCmd := cli.NewConfigCmd()

	// Root Commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cli.NewValuesCmds()...)
	rootCmd.AddCommand(cli.NewMapsCmds()...)
	rootCmd.AddCommand(cli.NewZSetsCmds()...)
	rootCmd.AddCommand(cli.NewListsCmds()...)

	// Root Flags
	rootCmd.PersistentFlags().StringVarP(
		&redisURL,
		"redis-url",
		"r",
		redisURL,
		"Redis server URL",
	)

	rootCmd.PersistentFlags().StringVarP(
		&prefix,
		"prefix",
		"p",
		prefix,
		"Namespace prepended to every key",
	)

	rootCmd.PersistentFlags().StringVarP(
		&codecName,
		"codec",
		"c",
		codecName,
		"Value encoding: json, msgpack or cbor",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.ConfigPath,
		"config",
		"",
		"Config file path",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"R",
		false,
		"Enables raw output mode for easier parsing of output",
	)

	// Set and range Flags
	rootCmd.PersistentFlags().DurationVarP(
		&cli.TTL,
		"ttl",
		"t",
		0,
		"Time to live of set values, 0 keeps them forever",
	)

	rootCmd.PersistentFlags().BoolVar(
		&cli.Reverse,
		"rev",
		false,
		"Range in descending score order",
	)

	rootCmd.PersistentFlags().BoolVar(
		&cli.RandomKey,
		"random-key",
		false,
		"Store the value at a generated key",
	)

	if err := rootCmd.Execute(); err != nil {
		exitCode = 1
	}
}

// newCache builds the cache chain: redis, then tracing, metrics and
// logging in that order. Metrics register with the default Prometheus
// registry for applications embedding the same chain; the CLI process
// exits after one command and does not serve them.
func newCache(client *goredis.Client, c codec.Codec, prefix string, logger *slog.Logger, tracer trace.Tracer) kvcache.Cache {
	cache := redis.NewCache(client, redis.WithCodec(c), redis.WithPrefix(prefix))
	cache = middleware.NewTracingMiddleware(tracer, cache)
	counter, latency := prometheus.MakeMetrics("kvcache", "cli")
	cache = middleware.NewMetricsMiddleware(counter, latency, cache)
	cache = middleware.NewLoggingMiddleware(logger, cache)

	return cache
}
