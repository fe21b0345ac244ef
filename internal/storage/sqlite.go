// Package storage provides SQLite-based persistence for the scoreboard and
// the match history. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/session"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one scoreboard line.
type ScoreEntry struct {
	ID        int64
	Pseudo    string
	Score     int
	BossTime  float64 // seconds; 0 when unknown
	CreatedAt time.Time
}

// HasBossTime reports whether the entry carries a boss time.
func (e ScoreEntry) HasBossTime() bool { return e.BossTime > 0 }

// MatchRecord is one row of the match history.
type MatchRecord struct {
	ID          int64
	MatchID     string
	Mode        string
	Rounds      int
	Pseudo      string
	Score1      int
	Score2      int
	BotScore    int
	Wins1       int
	Wins2       int
	BotWins     int
	Winner      string // "player1", "player2", "bot", "players", "tie" or "lost"
	Lost        bool
	BossTime    float64
	DurationSec float64
	CreatedAt   time.Time
}

const timeLayout = "2006-01-02 15:04:05"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scoreboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pseudo TEXT NOT NULL,
			score INTEGER NOT NULL,
			boss_time REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scoreboard_rank ON scoreboard(score DESC, boss_time ASC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			pseudo TEXT NOT NULL DEFAULT '',
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			bot_score INTEGER NOT NULL DEFAULT 0,
			wins1 INTEGER NOT NULL DEFAULT 0,
			wins2 INTEGER NOT NULL DEFAULT 0,
			bot_wins INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL,
			lost INTEGER NOT NULL DEFAULT 0,
			boss_time REAL,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddScore records a scoreboard entry. A non-positive bossTime is stored
// as unknown. Returns the ID of the inserted record.
func (s *Store) AddScore(pseudo string, score int, bossTime float64) (int64, error) {
	if pseudo == "" {
		return 0, errors.New("storage: cannot save score: empty pseudo")
	}
	result, err := s.db.Exec(
		"INSERT INTO scoreboard (pseudo, score, boss_time) VALUES (?, ?, ?)",
		pseudo, score, nullTime(bossTime),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best scoreboard entries: score descending, then
// boss time ascending with unknown times last.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pseudo, score, boss_time, created_at
		 FROM scoreboard
		 ORDER BY score DESC, boss_time IS NULL, boss_time ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var bossTime sql.NullFloat64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Pseudo, &e.Score, &bossTime, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if bossTime.Valid {
			e.BossTime = bossTime.Float64
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestScore returns the highest scoreboard score of a pseudo.
// Returns 0 if the pseudo has no entries.
func (s *Store) BestScore(pseudo string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scoreboard WHERE pseudo = ?",
		pseudo,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes every scoreboard entry.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scoreboard"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveMatch records a finished match. Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, rounds, pseudo, score1, score2, bot_score, wins1, wins2, bot_wins,
		  winner, lost, boss_time, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Mode, m.Rounds, m.Pseudo,
		m.Score1, m.Score2, m.BotScore,
		m.Wins1, m.Wins2, m.BotWins,
		m.Winner, m.Lost, nullTime(m.BossTime), m.DurationSec,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, mode, rounds, pseudo, score1, score2, bot_score,
	wins1, wins2, bot_wins, winner, lost, boss_time, duration_secs, created_at`

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, optionally of one mode.
func (s *Store) RecentMatches(mode string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(sc scanner) (MatchRecord, error) {
	var m MatchRecord
	var bossTime sql.NullFloat64
	var createdAt any
	err := sc.Scan(
		&m.ID, &m.MatchID, &m.Mode, &m.Rounds, &m.Pseudo,
		&m.Score1, &m.Score2, &m.BotScore,
		&m.Wins1, &m.Wins2, &m.BotWins,
		&m.Winner, &m.Lost, &bossTime, &m.DurationSec, &createdAt,
	)
	if err != nil {
		return m, err
	}
	if bossTime.Valid {
		m.BossTime = bossTime.Float64
	}
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// ModeStats contains aggregated statistics for one game mode.
type ModeStats struct {
	Mode       string
	Matches    int
	Player1Won int
	BotWon     int
	Lost       int
	AvgScore   float64
	LastPlayed time.Time
}

// AllModeStats retrieves statistics for every mode that has been played.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*),
		        SUM(CASE WHEN winner = 'player1' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'bot' THEN 1 ELSE 0 END),
		        SUM(lost),
		        AVG(score1),
		        MAX(created_at)
		 FROM matches
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Matches, &st.Player1Won, &st.BotWon, &st.Lost, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveMatchResult implements session.ResultSaver.
func (s *Store) SaveMatchResult(r session.MatchResult) error {
	_, err := s.SaveMatch(MatchRecord{
		MatchID:     r.MatchID,
		Mode:        r.Mode.String(),
		Rounds:      r.Rounds,
		Pseudo:      r.Pseudo,
		Score1:      r.Scores[match.Player1],
		Score2:      r.Scores[match.Player2],
		BotScore:    r.Scores[match.Bot],
		Wins1:       r.Wins[match.Player1],
		Wins2:       r.Wins[match.Player2],
		BotWins:     r.Wins[match.Bot],
		Winner:      r.Winner,
		Lost:        r.Lost,
		BossTime:    r.BossTime,
		DurationSec: r.Duration,
	})
	return err
}

// SaveScoreboardEntry implements session.ResultSaver.
func (s *Store) SaveScoreboardEntry(pseudo string, score int, bossTime float64) error {
	_, err := s.AddScore(pseudo, score, bossTime)
	return err
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

func nullTime(seconds float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: seconds, Valid: seconds > 0}
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
