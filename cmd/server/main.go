package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/mux"
	"holdem-server/internal/rng"
	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 5

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides addr in the config")
var seed = flag.Int64("seed", 0, "the shuffle seed, overrides table.seed in the config")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}

	if *seed != 0 {
		cfg.Table.Seed = *seed
	}

	if cfg.Table.Seed == 0 {
		cfg.Table.Seed = rng.Crypto{}.Seed()
	}

	// fail fast
	if cfg.Tickets.Enabled {
		jwt.LoadSecret()
	}

	table, err := texasholdem.NewTable(texasholdem.Options{
		Seats:         cfg.Table.Seats,
		StartingStack: cfg.Table.StartingStack,
		Seed:          cfg.Table.Seed,
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not create table")
	}

	logrus.WithFields(logrus.Fields{
		"seats": cfg.Table.Seats,
		"stack": cfg.Table.StartingStack,
		"seed":  cfg.Table.Seed,
	}).Info("table created")

	dealer := room.NewDealer(table, room.Options{
		TurnTimeout: cfg.Table.TurnTimeout,
		JoinTimeout: cfg.Table.JoinTimeout,
	}, logrus.WithField("component", "dealer"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pitBoss := room.NewPitBoss(dealer)
	pitBoss.StartShift(ctx)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, cfg.Tickets.Enabled, cfg.Table.Seats))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		select {
		case <-ctx.Done():
		case <-pitBoss.Done():
			logrus.WithError(pitBoss.Err()).Info("table closed")

			// the seats still have HALT or END frames queued
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := pitBoss.WaitForClients(flushCtx); err != nil {
				logrus.WithError(err).Warn("not every seat received its last message")
			}
			cancel()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("could not shut down server")
		}
	}()

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server error")
	}

	<-shutdownDone
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
