// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
)

// flags are the command line flags for the meeting workflow service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the meeting workflow
// service.
type environment struct {
	Port string `envconfig:"PORT" default:"8080"`

	NatsURL string `envconfig:"NATS_URL" default:"nats://lfx-platform-nats.lfx.svc.cluster.local:4222"`

	// EmailMode selects the email transport: smtp or noop.
	EmailMode string `envconfig:"EMAIL_MODE" default:"noop"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@lfx.linuxfoundation.org"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	MaxNotificationRetries int `envconfig:"MAX_NOTIFICATION_RETRIES" default:"3"`
	InvitationWorkers      int `envconfig:"INVITATION_WORKERS" default:"10"`

	// OTLPEndpoint enables trace export when set, e.g. localhost:4318.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// parseFlags parses command line flags for the meeting workflow service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the meeting workflow service
func parseEnv() environment {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		slog.With(logging.ErrKey, err).Error("error parsing environment configuration")
		os.Exit(1)
	}

	if env.EmailMode != "smtp" && env.EmailMode != "noop" {
		slog.With("email_mode", env.EmailMode).Error("EMAIL_MODE must be smtp or noop")
		os.Exit(1)
	}
	if env.EmailMode == "smtp" && env.SMTPHost == "" {
		slog.Error("SMTP_HOST is required when EMAIL_MODE is smtp")
		os.Exit(1)
	}

	return env
}
