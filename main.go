package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quizkit/quizbot/bot"
	"github.com/quizkit/quizbot/config"
	"github.com/quizkit/quizbot/store"
)

func main() {
	configFile := flag.String("config", "", "path to a config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("loading .env", "error", err)
	}

	cfg := config.Default()
	if err := config.Load(*configFile, &cfg); err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	msgs, err := bot.LoadMessages(cfg.Messages)
	if err != nil {
		slog.Error("loading messages", "error", err)
		os.Exit(1)
	}

	gateway, err := bot.NewDiscordGateway(cfg.Token, cfg.Guild)
	if err != nil {
		slog.Error("creating gateway", "error", err)
		os.Exit(1)
	}

	b, err := bot.New(cfg, gateway, msgs, store.NewLedger(cfg.ScoresPath), store.NewQuestionSource(cfg.QuestionsPath))
	if err != nil {
		slog.Error("creating bot", "error", err)
		os.Exit(1)
	}
	gateway.Notify(b.HandleEvent)

	if err := gateway.Open(); err != nil {
		slog.Error("connecting", "error", err)
		os.Exit(1)
	}
	slog.Info("quizbot running", "channel", cfg.Channel)

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	<-ctrlc

	if err := gateway.Close(); err != nil {
		slog.Error("closing gateway", "error", err)
	}
}
