package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/RahulKumar035/portfolio/internal/analytics"
	"github.com/RahulKumar035/portfolio/internal/config"
	"github.com/RahulKumar035/portfolio/internal/emailjs"
	"github.com/RahulKumar035/portfolio/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := analytics.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open analytics database")
	}
	defer store.Close()

	mailer, err := emailjs.New(emailjs.Config{
		Endpoint: cfg.EmailJS.Endpoint,
		Credentials: emailjs.Credentials{
			ServiceID:   cfg.EmailJS.ServiceID,
			TemplateID:  cfg.EmailJS.TemplateID,
			PublicKey:   cfg.EmailJS.PublicKey,
			AccessToken: cfg.EmailJS.AccessToken,
		},
		Timeout: cfg.EmailJS.Timeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create emailjs client")
	}

	server, err := web.New(web.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Provider:  mailer,
		Analytics: store,
		StaticDir: "./static",
		ImagesDir: "./images",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}

	if cfg.IsDevelopment() {
		logger.Warn().Msg("using development admin credentials unless PORTFOLIO_ADMIN_USERNAME/PASSWORD are set")
	}

	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server failed")
	}
}
