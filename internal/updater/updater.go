// Package updater orchestrates weekly update runs: it resolves which
// scheduled tournaments just finished, fetches their results, applies
// scoring, and persists the season documents.
package updater

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
	"github.com/discline/pdga-fantasy-mcp-server/internal/pdga"
	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
	"github.com/discline/pdga-fantasy-mcp-server/internal/store"
)

// Updater runs the weekly update. Batches are synchronous and
// single-threaded; rate limiting between provider calls lives here, not in
// the provider.
type Updater struct {
	Schedule *schedule.Schedule
	Provider pdga.Client
	Store    store.Store
	Engine   *league.Engine
	Logger   *logrus.Logger

	Division string
	Window   time.Duration
	MinDelay time.Duration
	Now      func() time.Time

	// Documents follow a read-then-write cycle, so runs must not interleave.
	mu sync.Mutex
}

// RunOptions adjusts a single update run.
type RunOptions struct {
	// Window overrides the updater's lookback window when positive.
	Window time.Duration
	// DryRun fetches and scores in memory but never saves.
	DryRun bool
}

// New creates an updater with the default window and rate limit.
func New(sched *schedule.Schedule, provider pdga.Client, st store.Store, logger *logrus.Logger) *Updater {
	return &Updater{
		Schedule: sched,
		Provider: provider,
		Store:    st,
		Engine:   league.NewEngine(logger),
		Logger:   logger,
		Division: pdga.DefaultDivision,
		Window:   14 * 24 * time.Hour,
		MinDelay: 3 * time.Second,
		Now:      time.Now,
	}
}

// Run executes one weekly update and persists the documents.
func (u *Updater) Run(ctx context.Context) (*league.WeekSummary, error) {
	return u.RunWith(ctx, RunOptions{})
}

// DryRun executes one weekly update but never saves: fetching and scoring
// happen in memory only.
func (u *Updater) DryRun(ctx context.Context) (*league.WeekSummary, error) {
	return u.RunWith(ctx, RunOptions{DryRun: true})
}

// RunWith executes one weekly update with per-run options.
func (u *Updater) RunWith(ctx context.Context, opts RunOptions) (*league.WeekSummary, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	window := u.Window
	if opts.Window > 0 {
		window = opts.Window
	}

	runID := uuid.New().String()
	now := u.Now()
	log := u.Logger.WithFields(logrus.Fields{"run_id": runID, "dry_run": opts.DryRun})

	log.Info("Starting weekly update")

	docs, err := store.LoadAll(ctx, u.Store)
	if err != nil {
		log.WithError(err).Error("Failed to load league documents")
		return nil, fmt.Errorf("loading league documents: %w", err)
	}

	windowStart := now.Add(-window)
	candidates := u.finishedCandidates(windowStart, now)
	log.WithFields(logrus.Fields{
		"window_start": windowStart.Format("2006-01-02"),
		"window_end":   now.Format("2006-01-02"),
		"candidates":   len(candidates),
	}).Info("Resolved update window")

	events := u.fetchBatch(ctx, log, candidates)

	fresh, skipped := docs.Standings.SplitProcessed(events)
	if len(fresh) == 0 {
		log.WithField("already_processed", len(skipped)).Info("No fresh tournaments to score")
		return &league.WeekSummary{
			Week:    docs.Standings.CurrentWeek,
			Skipped: eventNames(skipped),
		}, nil
	}

	week := league.BeginWeek(docs.Standings)
	summary := u.Engine.ApplyWeek(week, fresh, docs.Rosters, docs.Standings)
	summary.Skipped = eventNames(skipped)

	keys := make([]string, 0, len(fresh))
	for _, ev := range fresh {
		keys = append(keys, ev.EventKey)
	}
	docs.Standings.MarkProcessed(keys...)

	league.RecomputeStandings(docs.Standings, now)

	for _, ev := range fresh {
		docs.History.Add(league.BuildTournamentRecord(docs.Rosters, ev, week))
	}
	docs.PlayerStats = league.RebuildPlayerStats(docs.Rosters, now)

	if opts.DryRun {
		log.WithField("week", week).Info("Dry run complete; documents not saved")
		return summary, nil
	}

	if err := store.SaveAll(ctx, u.Store, docs); err != nil {
		log.WithError(err).Error("Failed to save league documents")
		return summary, fmt.Errorf("saving league documents: %w", err)
	}

	leader := ""
	if len(docs.Standings.Standings) > 0 {
		leader = docs.Standings.Standings[0].TeamName
	}
	log.WithFields(logrus.Fields{
		"week":    week,
		"scored":  len(fresh),
		"skipped": len(skipped),
		"leader":  leader,
	}).Info("Weekly update complete")

	return summary, nil
}

// finishedCandidates returns schedule entries inside the window whose end
// date has passed. Ongoing tournaments wait for the next run.
func (u *Updater) finishedCandidates(start, end time.Time) []*schedule.Tournament {
	var finished []*schedule.Tournament
	for _, t := range u.Schedule.InRange(start, end) {
		if t.End != nil && t.End.Before(end) {
			finished = append(finished, t)
		}
	}
	return finished
}

// fetchBatch fetches every candidate's results. One tournament's failure
// never aborts the batch, and MinDelay spaces out provider calls (never
// sleeping after the last).
func (u *Updater) fetchBatch(ctx context.Context, log *logrus.Entry, candidates []*schedule.Tournament) []league.EventResults {
	var events []league.EventResults

	for i, t := range candidates {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Update cancelled mid-batch")
			break
		}
		if i > 0 && u.MinDelay > 0 {
			select {
			case <-ctx.Done():
				log.WithError(ctx.Err()).Warn("Update cancelled mid-batch")
				return events
			case <-time.After(u.MinDelay):
			}
		}

		ev, err := u.fetchTournament(t)
		if err != nil {
			if pdga.IsNotFound(err) {
				log.WithField("tournament", t.Name).Warn("No PDGA event matched; skipping this run")
			} else {
				log.WithError(err).WithField("tournament", t.Name).Error("Failed to fetch tournament; continuing batch")
			}
			continue
		}
		if len(ev.Results) == 0 {
			log.WithField("tournament", t.Name).Warn("No results parsed; skipping this run")
			continue
		}

		events = append(events, *ev)
	}

	return events
}

// fetchTournament resolves one schedule entry through the provider and maps
// its rows into the engine's shape.
func (u *Updater) fetchTournament(t *schedule.Tournament) (*league.EventResults, error) {
	query := t.Name
	if t.HasEventID() {
		query = t.EventID
	}

	ref, err := u.Provider.FindEvent(query)
	if err != nil {
		return nil, err
	}

	rows, err := u.Provider.FetchResults(ref, u.Division)
	if err != nil {
		return nil, err
	}

	ev := &league.EventResults{
		Name:     t.Name,
		EventKey: t.EventKey(),
		EventID:  ref.EventID,
		Tier:     t.Tier,
		EndDate:  t.End,
		Results:  make([]league.PlayerResult, 0, len(rows)),
	}
	for _, row := range rows {
		ev.Results = append(ev.Results, league.PlayerResult{
			Placement:  row.Placement,
			PDGANumber: row.PDGANumber,
			Name:       row.Name,
			Tied:       row.Tied,
		})
	}
	return ev, nil
}

func eventNames(events []league.EventResults) []string {
	if len(events) == 0 {
		return nil
	}
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	return names
}
