// Command leaguectl runs league operations from the command line: the
// weekly update, single-event fetches, bulk fetches of every scheduled
// event with a PDGA ID, and a schedule listing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/config"
	"github.com/discline/pdga-fantasy-mcp-server/internal/pdga"
	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
	"github.com/discline/pdga-fantasy-mcp-server/internal/store"
	"github.com/discline/pdga-fantasy-mcp-server/internal/updater"
)

const usageText = `Usage: leaguectl <command> [flags]

Commands:
  update      Run the weekly league update (fetch, score, save)
  fetch       Fetch one tournament's results by PDGA event ID
  fetch-all   Fetch results for every scheduled tournament with an event ID
  schedule    Print the resolved season schedule

Run 'leaguectl <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{})
	logger.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, reading environment variables directly")
	}

	var err error
	switch os.Args[1] {
	case "update":
		err = runUpdate(os.Args[2:], logger)
	case "fetch":
		err = runFetch(os.Args[2:], logger)
	case "fetch-all":
		err = runFetchAll(os.Args[2:], logger)
	case "schedule":
		err = runSchedule(os.Args[2:], logger)
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		logger.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

// app bundles the wired collaborators every subcommand needs.
type app struct {
	cfg      *config.Config
	schedule *schedule.Schedule
	updater  *updater.Updater
}

func newApp(logger *logrus.Logger) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading league config: %w", err)
	}

	sched, err := schedule.LoadFile(cfg.SchedulePath, time.Now(), logger)
	if err != nil {
		return nil, fmt.Errorf("loading tournament schedule from %s: %w", cfg.SchedulePath, err)
	}

	st, err := newStore(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing document store: %w", err)
	}

	u := updater.New(sched, pdga.NewHTTPClient(cfg.BaseURL, logger), st, logger)
	u.Division = cfg.Division
	u.Window = cfg.Window()
	u.MinDelay = cfg.RequestDelay()

	return &app{cfg: cfg, schedule: sched, updater: u}, nil
}

// newStore selects the document backend from config.
func newStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return store.NewS3Store(ctx, store.S3Config{
			Bucket:   cfg.Storage.Bucket,
			Prefix:   cfg.Storage.Prefix,
			Region:   cfg.Storage.Region,
			Endpoint: cfg.Storage.Endpoint,
		}, logger)
	case "", "file":
		return store.NewFileStore(cfg.DataDir, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func runUpdate(args []string, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	windowDays := fs.Int("window-days", 0, "How many days back to look for finished tournaments (default: configured window)")
	dryRun := fs.Bool("dry-run", false, "Fetch and score without saving any document")
	verbose := fs.Bool("verbose", false, "Log each scoring step")
	fs.Parse(args)

	if *verbose {
		logger.SetLevel(logrus.InfoLevel)
	}

	a, err := newApp(logger)
	if err != nil {
		return err
	}

	opts := updater.RunOptions{DryRun: *dryRun}
	if *windowDays > 0 {
		opts.Window = time.Duration(*windowDays) * 24 * time.Hour
	}

	summary, err := a.updater.RunWith(context.Background(), opts)
	if err != nil {
		return err
	}

	if len(summary.Tournaments) == 0 {
		fmt.Printf("No fresh tournaments to score (%d already processed)\n", len(summary.Skipped))
		return nil
	}

	fmt.Printf("Week %d scored %d tournament(s):\n", summary.Week, len(summary.Tournaments))
	for _, name := range summary.Tournaments {
		fmt.Printf("  %s\n", name)
	}
	if len(summary.Skipped) > 0 {
		fmt.Printf("Skipped %d already-processed tournament(s)\n", len(summary.Skipped))
	}

	fmt.Println("\nTeam scores this week:")
	for _, team := range summary.Teams {
		fmt.Printf("  %s: %.1f pts\n", team.TeamName, team.Score)
		for i, p := range team.TopPlayers {
			fmt.Printf("    %d. %s: %.1f pts (%d tournament(s))\n", i+1, p.Name, p.Score, p.Tournaments)
		}
	}

	if *dryRun {
		fmt.Println("\nDry run: no documents were saved")
	}
	return nil
}

func runFetch(args []string, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	eventID := fs.String("event-id", "", "PDGA event ID to fetch (required)")
	division := fs.String("division", "", "Division to fetch (default: configured division)")
	asJSON := fs.Bool("json", false, "Print the full preview as JSON")
	fs.Parse(args)

	if *eventID == "" {
		fs.Usage()
		return fmt.Errorf("-event-id is required")
	}

	a, err := newApp(logger)
	if err != nil {
		return err
	}

	preview, err := a.updater.FetchEvent(context.Background(), *eventID, *division)
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(preview)
	}

	printPreview(preview)
	return nil
}

func runFetchAll(args []string, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("fetch-all", flag.ExitOnError)
	division := fs.String("division", "", "Division to fetch (default: configured division)")
	asJSON := fs.Bool("json", false, "Print all previews as JSON")
	fs.Parse(args)

	a, err := newApp(logger)
	if err != nil {
		return err
	}

	withIDs := a.schedule.WithEventIDs()
	if len(withIDs) == 0 {
		fmt.Println("No scheduled tournaments carry a PDGA event ID yet")
		fmt.Println("Add a fourth field to the schedule record: Name,Tier,Dates,EventID")
		return nil
	}

	fmt.Printf("Fetching %d scheduled tournament(s) with event IDs\n", len(withIDs))

	var previews []*updater.EventPreview
	for i, t := range withIDs {
		if i > 0 && a.cfg.RequestDelay() > 0 {
			time.Sleep(a.cfg.RequestDelay())
		}

		preview, err := a.updater.FetchEvent(context.Background(), t.EventID, *division)
		if err != nil {
			logger.WithError(err).WithField("tournament", t.Name).Warn("Fetch failed, continuing")
			fmt.Printf("  %s (event %s): FAILED\n", t.Name, t.EventID)
			continue
		}
		previews = append(previews, preview)

		if !*asJSON {
			fmt.Printf("  %s (event %s): %d finishers, %d roster hits\n",
				t.Name, t.EventID, len(preview.Results), len(preview.RosterHits))
		}
	}

	if *asJSON {
		return printJSON(previews)
	}

	fmt.Printf("Fetched %d of %d tournament(s)\n", len(previews), len(withIDs))
	return nil
}

func runSchedule(args []string, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the resolved schedule as JSON")
	fs.Parse(args)

	a, err := newApp(logger)
	if err != nil {
		return err
	}

	now := time.Now()
	if *asJSON {
		return printJSON(a.schedule.ExportJSON(now))
	}

	fmt.Printf("%d Tournament Schedule\n", now.Year())
	fmt.Println("======================")

	for i, t := range a.schedule.Tournaments {
		fmt.Printf("\n%2d. %s\n", i+1, t.Name)
		fmt.Printf("    Tier: %s\n", t.Tier.Display)
		fmt.Printf("    Dates: %s\n", t.DatesRaw)
		if t.Start != nil {
			fmt.Printf("    Start: %s\n", t.Start.Format("2006-01-02"))
		}
		if t.HasEventID() {
			fmt.Printf("    Event ID: %s\n", t.EventID)
		} else {
			fmt.Printf("    Event ID: [not set]\n")
		}
	}

	withIDs := len(a.schedule.WithEventIDs())
	fmt.Printf("\nTotal tournaments: %d\n", len(a.schedule.Tournaments))
	fmt.Printf("With event IDs: %d\n", withIDs)
	fmt.Printf("Without event IDs: %d\n", len(a.schedule.Tournaments)-withIDs)
	return nil
}

func printPreview(preview *updater.EventPreview) {
	name := preview.Event.Name
	if name == "" && preview.Tournament != nil {
		name = preview.Tournament.Name
	}

	fmt.Printf("Tournament: %s\n", name)
	fmt.Printf("Event ID:   %s\n", preview.Event.EventID)
	fmt.Printf("Division:   %s\n", preview.Division)
	fmt.Printf("Players:    %d\n", len(preview.Results))

	top := preview.Results
	if len(top) > 10 {
		top = top[:10]
	}
	fmt.Println("\nTop finishers:")
	for _, row := range top {
		tied := " "
		if row.Tied {
			tied = "T"
		}
		fmt.Printf("  %s%2d. %-30s PDGA #%d\n", tied, row.Placement, row.Name, row.PDGANumber)
	}

	if len(preview.RosterHits) == 0 {
		fmt.Println("\nNo rostered players in these results")
		return
	}
	fmt.Println("\nRoster hits:")
	for _, hit := range preview.RosterHits {
		underdog := ""
		if hit.Underdog {
			underdog = " [underdog]"
		}
		fmt.Printf("  %s (%s): %s, %.1f pts%s\n", hit.Player, hit.Team, hit.Finish, hit.Points, underdog)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
