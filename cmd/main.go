package main

import (
	"PeerFund_Auth/config"
	"PeerFund_Auth/config/server"
	"PeerFund_Auth/internal/handler"
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/notifier"
	"PeerFund_Auth/internal/security"
	"PeerFund_Auth/internal/service"
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "путь до yaml файла конфигурации")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.New(0).Fatal("config_load_failed", slog.String("err", err.Error()))
	}

	log := logger.New(cfg.Log.Level)
	slog.SetDefault(log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	memberStore, closeStore, err := server.SetupMemberStore(ctx, cfg)
	if err != nil {
		log.Fatal("member_store_setup_failed", slog.String("driver", cfg.Database.Driver), slog.String("err", err.Error()))
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("member_store_close_failed", slog.String("err", err.Error()))
		}
	}()

	codec, err := security.NewJWTCodec([]byte(cfg.JWT.SecretKey), cfg.JWT.Policy())
	if err != nil {
		log.Fatal("jwt_codec_setup_failed", slog.String("err", err.Error()))
	}

	rotationNotifier := notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)
	authenticationService := service.NewAuthenticationService(memberStore, codec, rotationNotifier)
	credentialAuthenticator := service.NewCredentialAuthenticator(
		service.NewPasswordAuthenticationManager(memberStore), memberStore, codec)
	authenticationHandler := handler.NewAuthenticationHandler(credentialAuthenticator)

	httpServer, router := server.SetupServer(cfg.Server)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(handler.Logging(log.Logger))
	handler.RegisterRoutes(router, authenticationHandler, authenticationService)

	runServer(ctx, httpServer, cfg.Server.ShutdownTimeout)
}

func runServer(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("server_started", slog.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("server_failed", slog.String("err", err.Error()))
			return
		}
	case sig := <-signalChannel:
		slog.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		slog.Error("server_shutdown_failed", slog.String("err", err.Error()))
	} else {
		slog.Info("server_stopped")
	}
}
