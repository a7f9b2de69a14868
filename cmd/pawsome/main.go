package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/thesavant42/pawsome/internal/api"
	"github.com/thesavant42/pawsome/internal/config"
	"github.com/thesavant42/pawsome/internal/db"
	"github.com/thesavant42/pawsome/internal/selection"
	"github.com/thesavant42/pawsome/internal/sharelink"
	"github.com/thesavant42/pawsome/internal/ui"
)

func main() {
	configFlag := flag.String("config", "", "Path to YAML config file (default pawsome.yaml if present)")
	dbFlag := flag.String("db", "", "Path to SQLite database file")
	linkFlag := flag.String("link", "", "Open a shared favorites link")
	baseURLFlag := flag.String("base-url", "", "Dog catalog API base URL")
	ephemeralFlag := flag.Bool("ephemeral", false, "Keep favorites in memory only")
	logLevelFlag := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	// Accept the link as a positional argument too
	if *linkFlag == "" && flag.NArg() > 0 {
		*linkFlag = flag.Arg(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to load config: %v", err))
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if *baseURLFlag != "" {
		cfg.BaseURL = *baseURLFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		ui.PrintError(fmt.Sprintf("Invalid config: %v", err))
		os.Exit(1)
	}

	logger, logCloser := api.NewFileLogger(cfg.DBPath, cfg.LogLevel)
	defer logCloser.Close()

	// Favorites live in SQLite unless running ephemeral
	var persister selection.Persister
	var history ui.History
	if *ephemeralFlag {
		persister = selection.NewMemoryPersister()
	} else {
		database, err := db.New(cfg.DBPath)
		if err != nil {
			ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
			os.Exit(1)
		}
		defer database.Close()
		persister = database.SelectionPersister(db.FavoritesKey)
		history = database
	}

	// A shared link with ids wins over what was saved
	var linked selection.Snapshot
	if snap, found := sharelink.Lookup(*linkFlag); found {
		linked = snap
		logger.Info("Opening shared favorites", "count", len(snap))
	}
	store := selection.Open(persister, linked, selection.WithLogger(logger))

	client, err := api.NewCatalogClient(cfg.BaseURL, logger,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	name, email := cfg.Name, cfg.Email
	if name == "" || email == "" {
		name, email, err = ui.PromptForIdentity(name, email)
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	}

	err = ui.RunWithSpinner("Logging in to "+client.BaseURL()+"...", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		return client.Login(ctx, name, email)
	})
	if errors.Is(err, ui.ErrSpinnerCancelled) {
		return
	}
	if err != nil {
		ui.PrintError(fmt.Sprintf("Login failed: %v", err))
		os.Exit(1)
	}

	session := ui.NewSession(ui.SessionConfig{
		Catalog:      client,
		Store:        store,
		PageSize:     cfg.PageSize,
		History:      history,
		Logger:       logger,
		ShareBaseURL: cfg.ShareBaseURL,
		Timeout:      cfg.RequestTimeout,
	})

	// Clear screen before launching main TUI (fixes ghost flash from alt-screen transition)
	fmt.Print("\033[H\033[2J")

	if err := ui.RunApp(session, *linkFlag); err != nil {
		ui.PrintError(fmt.Sprintf("Interactive mode failed: %v", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Logout(ctx); err != nil {
		logger.Warn("Logout failed", "error", err)
	}

	if n := store.Len(); n > 0 {
		fmt.Println(ui.DimStyle.Render(fmt.Sprintf("%d favorites: %s", n, session.ShareLink())))
	}
}
