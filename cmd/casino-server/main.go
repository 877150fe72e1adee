package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/weedbox/casinotable"
	"github.com/weedbox/casinotable/config"
	"github.com/weedbox/casinotable/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	printBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("bye")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	hub := server.NewHub(logger.Named("hub"))
	manager := casinotable.NewManager(cfg.TableSetting())
	dispatcher := casinotable.NewDispatcher(manager, hub,
		casinotable.WithLogger(logger.Named("dispatcher")),
		casinotable.WithSpinDelay(cfg.SpinDelay),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- dispatcher.Run(ctx)
	}()

	srv := server.NewServer(hub, dispatcher,
		server.WithLogger(logger.Named("server")),
		server.WithStaticDir(cfg.StaticDir),
	)
	serveErr := srv.ListenAndServe(ctx, cfg.Addr())

	cancel()
	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return serveErr
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level())
	zcfg.Encoding = "console"
	return zcfg.Build()
}

func printBanner(cfg config.Config) {
	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Casino", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Table", pterm.FgDarkGray.ToStyle()),
	).Render()

	pterm.Info.Printfln("Listening on %s", cfg.Addr())
	pterm.Info.Printfln("Blackjack shoe: %d decks, starting chips: %d, spin delay: %s", cfg.BlackjackDecks, cfg.StartingChips, cfg.SpinDelay)
}
