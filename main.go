package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/VaishnevSreejeev/canteen-ordering-app/bot"
	"github.com/VaishnevSreejeev/canteen-ordering-app/config"
	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
	"github.com/VaishnevSreejeev/canteen-ordering-app/httpapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	var notifier *bot.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.StaffChatID != 0 {
		notifier, err = bot.NewNotifier(cfg.Telegram.Token, cfg.Telegram.StaffChatID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "staff bot:", err)
			os.Exit(1)
		}
		fmt.Println("Staff notifier enabled.")
	}

	srv := httpapi.NewServer(cfg, notifier)
	if err := srv.Start(cfg.HTTP.Addr); err != nil {
		fmt.Fprintln(os.Stderr, "http:", err)
		os.Exit(1)
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
