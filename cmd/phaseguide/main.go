package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/phaseguide/internal/cli"
	"github.com/alexanderramin/phaseguide/internal/config"
	"github.com/alexanderramin/phaseguide/internal/db"
	"github.com/alexanderramin/phaseguide/internal/progress"
	"github.com/alexanderramin/phaseguide/internal/repository"
	"github.com/alexanderramin/phaseguide/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	store := progress.New(
		repository.NewSQLiteKVRepo(database),
		progress.WithKey(cfg.StorageKey),
		progress.WithLogger(logger),
	)
	store.Load(ctx)
	defer store.Close(context.WithoutCancel(ctx))

	var useCaseLog io.Writer
	if cfg.LogUseCases {
		useCaseLog = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(useCaseLog)

	events := repository.NewSQLiteProgressEventRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Progress: service.NewProgressService(store, events, cfg.Rules(), logger, observer),
		Transfer: service.NewTransferService(store, uow, observer),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
