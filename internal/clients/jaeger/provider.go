// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package jaeger builds the OpenTelemetry tracer provider exporting spans
// to a Jaeger OTLP/HTTP endpoint.
package jaeger

import (
	"context"
	"net/url"

	"github.com/absmach/kvcache/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

var (
	// ErrNoURL indicates an empty collector URL.
	ErrNoURL = errors.New("URL is empty")

	// ErrNoSvcName indicates an empty service name.
	ErrNoSvcName = errors.New("Service Name is empty")

	errUnsupportedTraceURLScheme = errors.New("unsupported tracing url scheme")
)

// NewProvider initializes the Jaeger tracer provider. Spans are sampled
// with the given ratio, in the range [0, 1].
func NewProvider(ctx context.Context, svcName, jaegerURL, instanceID string, fraction float64) (*tracesdk.TracerProvider, error) {
	if jaegerURL == "" {
		return nil, ErrNoURL
	}

	if svcName == "" {
		return nil, ErrNoSvcName
	}

	u, err := url.Parse(jaegerURL)
	if err != nil {
		return nil, err
	}

	var opts []otlptracehttp.Option
	switch u.Scheme {
	case "http":
		opts = append(opts, otlptracehttp.WithInsecure())
	case "https":
	default:
		return nil, errUnsupportedTraceURLScheme
	}
	opts = append(opts, otlptracehttp.WithEndpoint(u.Host), otlptracehttp.WithURLPath(u.Path))

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	attributes := []attribute.KeyValue{
		semconv.ServiceNameKey.String(svcName),
		attribute.String("host.id", instanceID),
	}

	hostAttr, err := resource.New(ctx, resource.WithHost(), resource.WithOSDescription(), resource.WithContainer())
	if err != nil {
		return nil, err
	}
	attributes = append(attributes, hostAttr.Attributes()...)

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.TraceIDRatioBased(fraction)),
		tracesdk.WithBatcher(exporter),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			attributes...,
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}
