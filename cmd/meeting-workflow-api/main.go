// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the meeting workflow service: it coordinates the
// meeting lifecycle, attendance tracking, action item follow-up and
// multi-channel notification delivery, and handles NATS messages as its
// request entry point.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/service"
)

// natsSubjectQueue is the queue group all instances of this service share.
const natsSubjectQueue = "lfx.meeting-workflow-api.queue"

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Tracing is optional; without an endpoint the spans are no-ops.
	shutdownTracing, err := setupTracing(ctx, env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up trace exporter")
		return
	}

	// Initialize the email transport (independent of NATS)
	emailTransport, err := setupEmailTransport(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up email transport")
		return
	}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	kvStores, err := getKeyValueStores(ctx, natsConn, []string{
		store.KVStoreNameMeetings,
		store.KVStoreNameParticipations,
		store.KVStoreNameNotifications,
		store.KVStoreNameActionItems,
		store.KVStoreNameAgendaItems,
		store.KVStoreNameDocuments,
	})
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	meetingRepository := store.NewNatsMeetingRepository(kvStores[store.KVStoreNameMeetings])
	participationRepository := store.NewNatsParticipationRepository(kvStores[store.KVStoreNameParticipations])
	notificationRepository := store.NewNatsNotificationRepository(kvStores[store.KVStoreNameNotifications])
	actionItemRepository := store.NewNatsActionItemRepository(kvStores[store.KVStoreNameActionItems])
	agendaItemRepository := store.NewNatsAgendaItemRepository(kvStores[store.KVStoreNameAgendaItems])
	documentRepository := store.NewNatsDocumentRepository(kvStores[store.KVStoreNameDocuments])

	// Initialize services
	serviceConfig := service.ServiceConfig{
		MaxNotificationRetries: env.MaxNotificationRetries,
		InvitationWorkers:      env.InvitationWorkers,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	notificationService := service.NewNotificationService(
		notificationRepository,
		messageBuilder,
		[]domain.NotificationTransport{emailTransport},
		serviceConfig,
	)
	meetingService := service.NewMeetingService(
		meetingRepository,
		participationRepository,
		notificationRepository,
		actionItemRepository,
		agendaItemRepository,
		documentRepository,
		messageBuilder,
		notificationService,
		serviceConfig,
	)
	participationService := service.NewParticipationService(
		meetingRepository,
		participationRepository,
		messageBuilder,
	)
	actionItemService := service.NewActionItemService(
		meetingRepository,
		actionItemRepository,
		messageBuilder,
	)

	// Initialize handlers
	meetingHandler := handlers.NewMeetingHandler(
		meetingService,
		participationService,
		notificationService,
		actionItemService,
	)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, meetingHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	httpServer := setupHealthServer(flags, meetingHandler, &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, shutdownTracing, &gracefulCloseWG, cancel)
}

// createNatsSubscriptions subscribes the handler to the service's request
// subjects on the shared queue group.
func createNatsSubscriptions(ctx context.Context, handler domain.MessageHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.MeetingGetTitleSubject,
		models.MeetingGetAggregateSubject,
	}

	for _, subject := range subjects {
		_, err := natsConn.QueueSubscribe(subject, natsSubjectQueue, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, messaging.NewNatsMessage(msg))
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "subject", subject).Error("error subscribing to subject")
			return err
		}
		slog.With("subject", subject, "queue", natsSubjectQueue).Debug("subscribed to subject")
	}

	return nil
}

// setupHealthServer starts a minimal HTTP listener for liveness and
// readiness probes. The service's real API surface is NATS.
func setupHealthServer(flags flags, handler domain.MessageHandler, gracefulCloseWG *sync.WaitGroup) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !handler.HandlerReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting health check server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}

// gracefulShutdown drains the NATS connection, stops the health listener
// and flushes pending spans before exiting.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, shutdownTracing func(context.Context) error, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	} else {
		gracefulCloseWG.Done()
	}

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
			natsConn.Close()
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error flushing trace exporter")
	}

	// Wait for the NATS closed handler and the http listener.
	gracefulCloseWG.Wait()
	slog.Info("shutdown complete")
}
