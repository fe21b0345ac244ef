// Package progress persists resumable match progress as a JSON document
// holding one record per game mode. Keys written by other tools are kept
// untouched.
//
// A missing, unreadable or malformed file is never fatal: it reads as
// "no saved progress" and is logged.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/match"
)

// ErrNotPersisted is returned when saving a mode that keeps no progress.
var ErrNotPersisted = errors.New("progress: mode is not persisted")

// modeKeys maps persisted modes to their document key.
var modeKeys = map[match.GameMode]string{
	match.ModeSoloVsBot: "joueur_vs_bot",
}

// Key returns the document key of mode and whether the mode is persisted.
func Key(mode match.GameMode) (string, bool) {
	k, ok := modeKeys[mode]
	return k, ok
}

// Persisted reports whether progress of mode is saved.
func Persisted(mode match.GameMode) bool {
	_, ok := modeKeys[mode]
	return ok
}

// Record is the persisted progress of one mode.
type Record struct {
	CurrentRound  int  `json:"current_round"`
	NumRounds     int  `json:"num_rounds"`
	Player1Wins   int  `json:"player1_wins"`
	BotWins       int  `json:"bot_wins"`
	MatchComplete bool `json:"match_complete"`
}

// RecordOf captures the persistable state of a machine.
func RecordOf(m *match.Machine) Record {
	st := m.ResumeState()
	return Record{
		CurrentRound:  st.CurrentRound,
		NumRounds:     m.TotalRounds(),
		Player1Wins:   st.Player1Wins,
		BotWins:       st.BotWins,
		MatchComplete: st.MatchComplete,
	}
}

// ResumeState converts the record for match.Machine.Resume.
func (r Record) ResumeState() match.ResumeState {
	return match.ResumeState{
		CurrentRound:  r.CurrentRound,
		Player1Wins:   r.Player1Wins,
		BotWins:       r.BotWins,
		MatchComplete: r.MatchComplete,
	}
}

// Config returns the match configuration the record belongs to.
func (r Record) Config(mode match.GameMode) match.Config {
	return match.Config{Mode: mode, TotalRounds: r.NumRounds}
}

func (r Record) valid() bool {
	if r.NumRounds != match.ShortMatch && r.NumRounds != match.LongMatch {
		return false
	}
	if r.CurrentRound < 1 || r.CurrentRound > r.NumRounds+1 {
		return false
	}
	return r.Player1Wins >= 0 && r.BotWins >= 0
}

// Store reads and writes the progress document.
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore creates a store backed by path. A leading ~ is expanded. A nil
// logger discards output.
func NewStore(path string, logger *log.Logger) (*Store, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: expanded, logger: logger}, nil
}

// Path returns the location of the progress document.
func (s *Store) Path() string { return s.path }

// Load returns the saved record of mode. The second result is false when
// there is no usable progress.
func (s *Store) Load(mode match.GameMode) (Record, bool) {
	key, ok := Key(mode)
	if !ok {
		return Record{}, false
	}
	doc, err := s.read()
	if err != nil {
		s.logger.Warn("ignoring unreadable progress", "path", s.path, "err", err)
		return Record{}, false
	}
	raw, ok := doc[key]
	if !ok {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn("ignoring malformed progress record", "key", key, "err", err)
		return Record{}, false
	}
	if !rec.valid() {
		s.logger.Warn("ignoring inconsistent progress record", "key", key,
			"round", rec.CurrentRound, "rounds", rec.NumRounds)
		return Record{}, false
	}
	return rec, true
}

// Save writes the record of mode, keeping the rest of the document.
func (s *Store) Save(mode match.GameMode, rec Record) error {
	key, ok := Key(mode)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotPersisted, mode)
	}
	doc := s.readOrEmpty()
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("progress: cannot encode record: %w", err)
	}
	doc[key] = raw
	if err := s.write(doc); err != nil {
		return err
	}
	s.logger.Debug("progress saved", "key", key, "round", rec.CurrentRound, "complete", rec.MatchComplete)
	return nil
}

// Reset deletes the record of mode. Resetting an absent record is not an error.
func (s *Store) Reset(mode match.GameMode) error {
	key, ok := Key(mode)
	if !ok {
		return nil
	}
	doc := s.readOrEmpty()
	if _, exists := doc[key]; !exists {
		return nil
	}
	delete(doc, key)
	if err := s.write(doc); err != nil {
		return err
	}
	s.logger.Info("progress reset", "key", key)
	return nil
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

// readOrEmpty starts from an empty document when the current one is
// unreadable, so a corrupt file is replaced on the next write.
func (s *Store) readOrEmpty() map[string]json.RawMessage {
	doc, err := s.read()
	if err != nil {
		s.logger.Warn("replacing unreadable progress", "path", s.path, "err", err)
		return map[string]json.RawMessage{}
	}
	return doc
}

// write replaces the document atomically through a temp file and rename.
func (s *Store) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("progress: cannot encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("progress: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("progress: cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("progress: cannot close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("progress: cannot replace %s: %w", s.path, err)
	}
	return nil
}
