package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/pawsome/internal/api"
	"github.com/thesavant42/pawsome/internal/config"
	"github.com/thesavant42/pawsome/internal/db"
	"github.com/thesavant42/pawsome/internal/models"
	"github.com/thesavant42/pawsome/internal/selection"
	"github.com/thesavant42/pawsome/internal/sharelink"
	"github.com/thesavant42/pawsome/internal/ui"
)

func main() {
	configFlag := flag.String("config", "", "Path to YAML config file")
	dbFlag := flag.String("db", "", "Path to SQLite database")
	baseURLFlag := flag.String("base-url", "", "Dog catalog API base URL")
	markdownFlag := flag.Bool("markdown", false, "Fetch the favorites and print a markdown report")
	csvFlag := flag.String("csv", "", "Fetch the favorites and write them to this CSV file")
	clearFlag := flag.Bool("clear", false, "Clear the saved favorites after confirming")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "export-favorites"})

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if *baseURLFlag != "" {
		cfg.BaseURL = *baseURLFlag
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", "error", err)
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	store := selection.Open(database.SelectionPersister(db.FavoritesKey), nil, selection.WithLogger(logger))
	snap := store.Snapshot()
	link := sharelink.Link(cfg.ShareBaseURL, snap)

	if *clearFlag {
		clearFavorites(store)
		return
	}

	fmt.Println(link)
	if !*markdownFlag && *csvFlag == "" {
		return
	}

	dogs, missing, err := fetchFavorites(cfg, logger, snap)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	if *csvFlag != "" {
		if err := ui.ExportFavoritesCSV(*csvFlag, dogs); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess(fmt.Sprintf("Exported %d favorites to %s", len(dogs), *csvFlag))
	}

	if *markdownFlag {
		matches, err := database.RecentMatches(10)
		if err != nil {
			logger.Warn("Failed to read match history", "error", err)
		}
		md := ui.GenerateMarkdownReport(ui.FavoritesReport{
			Link:      link,
			Dogs:      dogs,
			Missing:   missing,
			Matches:   matches,
			Generated: time.Now(),
		})
		out, err := ui.RenderMarkdown(md, ui.DefaultWidth)
		if err != nil {
			// fall back to the raw markdown
			logger.Warn("Failed to render markdown", "error", err)
			out = md
		}
		fmt.Print(out)
	}
}

// fetchFavorites logs in and hydrates the saved ids behind a spinner
func fetchFavorites(cfg config.Config, logger *log.Logger, ids selection.Snapshot) ([]models.Dog, []string, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	client, err := api.NewCatalogClient(cfg.BaseURL, logger,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return nil, nil, err
	}

	name, email := cfg.Name, cfg.Email
	if name == "" || email == "" {
		if name, email, err = ui.PromptForIdentity(name, email); err != nil {
			return nil, nil, err
		}
	}

	var dogs []models.Dog
	var missing []string
	var fetchErr error
	err = spinner.New().
		Title(fmt.Sprintf("Fetching %d favorites...", len(ids))).
		Action(func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()
			if fetchErr = client.Login(ctx, name, email); fetchErr != nil {
				fetchErr = fmt.Errorf("login failed: %w", fetchErr)
				return
			}
			dogs, missing, fetchErr = client.Hydrate(ctx, ids)
		}).
		Run()
	if err != nil {
		return nil, nil, fmt.Errorf("spinner error: %w", err)
	}
	if fetchErr != nil {
		return nil, nil, fmt.Errorf("failed to fetch favorites: %w", fetchErr)
	}
	if len(missing) > 0 {
		logger.Warn("Some favorites are no longer listed", "count", len(missing))
	}
	return dogs, missing, nil
}

func clearFavorites(store *selection.Store) {
	n := store.Len()
	if n == 0 {
		fmt.Println("No saved favorites.")
		return
	}
	ok, err := ui.ConfirmClear(n)
	if err != nil || !ok {
		fmt.Println("Cancelled.")
		return
	}
	store.Restore(selection.Snapshot{})
	ui.PrintSuccess(fmt.Sprintf("Cleared %d favorites", n))
}
