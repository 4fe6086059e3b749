// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/email"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// setupEmailTransport builds the email-channel transport selected by the
// environment.
func setupEmailTransport(env environment) (domain.NotificationTransport, error) {
	if env.EmailMode == "smtp" {
		return email.NewSMTPService(email.SMTPConfig{
			Host:     env.SMTPHost,
			Port:     env.SMTPPort,
			From:     env.SMTPFrom,
			Username: env.SMTPUsername,
			Password: env.SMTPPassword,
		})
	}
	return email.NewNoOpService(), nil
}

// setupTracing configures the OTLP trace exporter when an endpoint is
// configured. The returned shutdown function flushes pending spans.
func setupTracing(ctx context.Context, env environment) (func(context.Context) error, error) {
	if env.OTLPEndpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(env.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	resource, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("lfx-v2-meeting-workflow-service"),
		),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	return tracerProvider.Shutdown, nil
}

// setupNATS connects to the NATS server. The connection signals the done
// channel when it closes so the process can exit instead of running
// without its storage and messaging backbone.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(25*time.Second),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.With("nats_url", env.NatsURL).Info("NATS connection established")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).Error("async NATS error")
			} else {
				slog.With(logging.ErrKey, err).Error("async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			err := conn.LastError()
			if err != nil {
				slog.With(logging.ErrKey, err).Error("NATS connection closed")
			} else {
				slog.Info("NATS connection closed")
			}
			select {
			case done <- os.Interrupt:
			default:
			}
			gracefulCloseWG.Done()
		}),
	)
	if err != nil {
		return nil, err
	}
	// Matched by the Done() in the ClosedHandler.
	gracefulCloseWG.Add(1)

	return natsConn, nil
}

// getKeyValueStores provisions (or opens) the KV buckets the service
// stores its entities in.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn, buckets []string) (map[string]jetstream.KeyValue, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	stores := make(map[string]jetstream.KeyValue, len(buckets))
	for _, bucket := range buckets {
		kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  bucket,
			History: 20,
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "bucket", bucket).Error("error provisioning KV bucket")
			return nil, err
		}
		stores[bucket] = kv
	}

	return stores, nil
}
