package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/landing/contacto-api/internal/auth"
	"github.com/landing/contacto-api/internal/config"
	"github.com/landing/contacto-api/internal/infra/database"
	"github.com/landing/contacto-api/internal/infra/http/handlers"
	"github.com/landing/contacto-api/internal/infra/http/middleware"
	"github.com/landing/contacto-api/internal/infra/http/router"
	"github.com/landing/contacto-api/internal/infra/integration/emailapi"
	"github.com/landing/contacto-api/internal/infra/integration/recaptcha"
	"github.com/landing/contacto-api/internal/infra/integration/telegram"
	"github.com/landing/contacto-api/internal/infra/mail"
	"github.com/landing/contacto-api/internal/infra/notify"
	"github.com/landing/contacto-api/internal/infra/queue"
	"github.com/landing/contacto-api/internal/logging"
	"github.com/landing/contacto-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	logging.Setup("contacto-api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(database.PoolConfig{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN(),
		MaxConns: cfg.DB.MaxConns,
	})
	if err != nil {
		logging.Fatal("database connection failed", "error", err)
	}
	defer db.Close()

	if err := database.CreateSchema(ctx, db); err != nil {
		logging.Fatal("schema creation failed", "error", err)
	}

	admin, err := auth.NewAdminCredential(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logging.Fatal("admin credential setup failed", "error", err)
	}
	slog.Info("admin account configured", "email", admin.Email())
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	recorder := middleware.NewRecorder()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways
	captcha := recaptcha.NewClient(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL)
	fanout := buildFanout(cfg, recorder)
	if fanout.Len() == 0 {
		slog.Warn("no staff notification channel configured; leads will be stored silently")
	}

	// 3. Notification dispatch: broker when available, in-process otherwise
	var notifier usecase.LeadNotifier
	var rabbitState handlers.ConnectionState
	var async *notify.Async

	if cfg.RabbitMQURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logging.Fatal("rabbitmq setup failed", "error", err)
		}
		defer rabbit.Close()

		consumerCh, err := rabbit.Conn.Channel()
		if err != nil {
			logging.Fatal("rabbitmq consumer channel failed", "error", err)
		}
		defer consumerCh.Close()

		worker := queue.NewWorker(consumerCh, fanout)
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				slog.Error("notification worker stopped", "error", err)
			}
		}()

		notifier = queue.NewProducer(rabbit.Ch)
		rabbitState = rabbit.Conn
	} else {
		async = notify.NewAsync(fanout, notify.DefaultAsyncTimeout)
		notifier = async
	}

	// 4. Use cases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, captcha, notifier, recorder)
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo, cfg.MaxPageSize)
	updateStatusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo)
	loginUC := usecase.NewLoginUseCase(admin, tokens, recorder)

	// 5. Router
	mux := router.New(router.Dependencies{
		Contact:        handlers.NewContactHandler(createLeadUC),
		Auth:           handlers.NewAuthHandler(loginUC),
		Leads:          handlers.NewLeadHandler(listLeadsUC, updateStatusUC),
		Health:         handlers.NewHealthHandler(db, rabbitState),
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if async != nil {
		async.Wait()
	}
}

func buildFanout(cfg *config.Config, recorder middleware.Recorder) *notify.Fanout {
	var channels []notify.Channel

	if len(cfg.Mail.To) > 0 {
		switch {
		case cfg.Mail.APIKey != "":
			client := emailapi.NewClient(cfg.Mail.APIKey, cfg.Mail.APIURL)
			channels = append(channels, notify.Channel{
				Name:     "email_api",
				Notifier: mail.NewNotifier(client, cfg.Mail.From, cfg.Mail.To...),
			})
		case cfg.Mail.SMTPHost != "":
			smtp := mail.NewSMTPTransport(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPass)
			channels = append(channels, notify.Channel{
				Name:     "smtp",
				Notifier: mail.NewNotifier(smtp, cfg.Mail.From, cfg.Mail.To...),
			})
		}
	}

	if cfg.Telegram.Enabled() {
		tg, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			slog.Warn("telegram notifier disabled", "error", err)
		} else {
			channels = append(channels, notify.Channel{Name: "telegram", Notifier: tg})
		}
	}

	return notify.NewFanout(recorder, channels...)
}
