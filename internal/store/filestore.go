package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
)

// FileStore keeps the season documents as pretty-printed JSON files in a
// data directory.
type FileStore struct {
	dir    string
	logger *logrus.Logger
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string, logger *logrus.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

func (f *FileStore) readJSON(key string, target interface{}) error {
	path := filepath.Join(f.dir, key)

	data, err := os.ReadFile(path)
	if err != nil {
		return &StoreError{Op: "load", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &StoreError{Op: "load", Key: key, Err: err}
	}

	f.logger.WithField("file", path).Debug("Loaded document")
	return nil
}

func (f *FileStore) writeJSON(key string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}

	path := filepath.Join(f.dir, key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}

	f.logger.WithField("file", path).Debug("Saved document")
	return nil
}

func (f *FileStore) LoadRosters(ctx context.Context) (*league.Rosters, error) {
	var rosters league.Rosters
	if err := f.readJSON(RostersKey, &rosters); err != nil {
		return nil, err
	}
	return &rosters, nil
}

func (f *FileStore) LoadStandings(ctx context.Context) (*league.Standings, error) {
	var standings league.Standings
	if err := f.readJSON(StandingsKey, &standings); err != nil {
		return nil, err
	}
	return &standings, nil
}

func (f *FileStore) LoadHistory(ctx context.Context) (*league.History, error) {
	var history league.History
	if err := f.readJSON(HistoryKey, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (f *FileStore) LoadPlayerStats(ctx context.Context) (*league.PlayerStats, error) {
	var stats league.PlayerStats
	if err := f.readJSON(PlayerStatsKey, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (f *FileStore) SaveRosters(ctx context.Context, rosters *league.Rosters) error {
	return f.writeJSON(RostersKey, rosters)
}

func (f *FileStore) SaveStandings(ctx context.Context, standings *league.Standings) error {
	return f.writeJSON(StandingsKey, standings)
}

func (f *FileStore) SaveHistory(ctx context.Context, history *league.History) error {
	return f.writeJSON(HistoryKey, history)
}

func (f *FileStore) SavePlayerStats(ctx context.Context, stats *league.PlayerStats) error {
	return f.writeJSON(PlayerStatsKey, stats)
}
