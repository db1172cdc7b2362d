package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-session-auth/accounts"
	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/jrsteele09/go-session-auth/notify"
	"github.com/jrsteele09/go-session-auth/postgres"
	"github.com/jrsteele09/go-session-auth/server"
	fakesessionrepo "github.com/jrsteele09/go-session-auth/sessions/repofake"
	"github.com/jrsteele09/go-session-auth/token"
	"github.com/jrsteele09/go-session-auth/users"
	fakeuserrepo "github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/rs/zerolog"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())
	logger := newLogger(c)

	handler, cleanup, err := buildServer(c, logger)
	if err != nil {
		return fmt.Errorf("buildServer: %w", err)
	}
	defer cleanup()

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer, logger)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	accessKeys, err := token.DecodeKeyPair(c.GetAccessTokenPrivateKey(), c.GetAccessTokenPublicKey())
	if err != nil {
		return nil, nil, fmt.Errorf("access key pair: %w", err)
	}
	refreshKeys, err := token.DecodeKeyPair(c.GetRefreshTokenPrivateKey(), c.GetRefreshTokenPublicKey())
	if err != nil {
		return nil, nil, fmt.Errorf("refresh key pair: %w", err)
	}

	repos, cleanup, err := buildRepos(c, logger)
	if err != nil {
		return nil, nil, err
	}

	codec, err := token.NewCodec(accessKeys, refreshKeys, repos.Sessions, logger,
		token.WithTokenTTLs(c.GetAccessTokenTTL(), c.GetRefreshTokenTTL()))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("token.NewCodec: %w", err)
	}

	hasher := users.NewBcryptHasher(0)

	credentials, err := auth.NewService(repos, codec, hasher, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("auth.NewService: %w", err)
	}

	accountsService, err := accounts.NewService(accounts.Repos(repos), hasher, buildNotifier(c, logger), logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("accounts.NewService: %w", err)
	}

	deserializer := auth.NewDeserializer(codec, logger)

	return server.New(c, credentials, accountsService, deserializer, logger), cleanup, nil
}

// buildRepos wires Postgres-backed repositories when a DSN is configured and
// falls back to in-memory fakes for local development.
func buildRepos(c config.Config, logger zerolog.Logger) (auth.Repos, func(), error) {
	dsn := c.GetDatabaseDSN()
	if dsn == "" {
		logger.Warn().Msg("DATABASE_DSN not set, using in-memory repositories")
		return auth.Repos{
			Users:    fakeuserrepo.NewFakeUserRepo(),
			Sessions: fakesessionrepo.NewFakeSessionRepo(),
		}, func() {}, nil
	}

	manager, err := postgres.NewRepositoryManager(dsn)
	if err != nil {
		return auth.Repos{}, nil, fmt.Errorf("postgres.NewRepositoryManager: %w", err)
	}

	if err := manager.RunMigrations(context.Background()); err != nil {
		manager.Close()
		return auth.Repos{}, nil, fmt.Errorf("RunMigrations: %w", err)
	}

	cleanup := func() {
		if err := manager.Close(); err != nil {
			logger.Error().Err(err).Msg("closing database")
		}
	}
	return auth.Repos{Users: manager.Users(), Sessions: manager.Sessions()}, cleanup, nil
}

func buildNotifier(c config.Config, logger zerolog.Logger) notify.Notifier {
	if c.GetSmtpAccount() == "" {
		logger.Warn().Msg("SMTP_ACCOUNT not set, emails will be logged instead of sent")
		return notify.NewLogNotifier(logger)
	}
	return notify.NewSMTPNotifier(c, logger)
}

func newLogger(c config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if c.GetEnv() == "DEV" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.DebugLevel)
	}
	return logger
}

func listenAndServe(httpServer *http.Server, logger zerolog.Logger) {
	logger.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
