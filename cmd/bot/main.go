package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/earthvpn/telegram-bot/internal/access"
	"github.com/earthvpn/telegram-bot/internal/billing"
	"github.com/earthvpn/telegram-bot/internal/catalog"
	"github.com/earthvpn/telegram-bot/internal/config"
	"github.com/earthvpn/telegram-bot/internal/storage"
	"github.com/earthvpn/telegram-bot/internal/telegram"
	"github.com/earthvpn/telegram-bot/internal/vpn"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err.Error())
	}
	if len(cfg.AdminIDs) == 0 {
		log.Warn("ADMIN_IDS is empty, admin panel is unreachable")
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %s", err.Error())
	}

	repo, err := storage.NewRepository(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to create repository: %s", err.Error())
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("failed to run migrations: %s", err.Error())
	}

	generator, err := vpn.NewGenerator(cfg.OpenVPNHost, cfg.OpenVPNPort, cfg.WireguardHost)
	if err != nil {
		log.Fatalf("failed to create config generator: %s", err.Error())
	}

	billingService := billing.NewService(repo, cat, generator, billing.NewStubGateway())
	accessService := access.NewService(repo)

	bot, err := telegram.NewBot(cfg, repo, cat, billingService, accessService)
	if err != nil {
		log.Fatalf("failed to create telegram bot: %s", err.Error())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := bot.Run(ctx); err != nil {
			log.Fatalf("failed to run telegram bot: %s", err.Error())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.Infof("graceful shutdown with signal %v", sig)
		cancel()
		<-done
	}()
	<-done
}
