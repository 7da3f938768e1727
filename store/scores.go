package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
)

// Score is one ledger entry, keyed by the chat display identity
// (e.g. "@handle"). At most one entry per username exists at any time.
type Score struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Ledger is the persistent score mapping: a JSON array of Score entries,
// read in full and rewritten in full on every mutation. The ledger is the
// sole writer to its file; availability wins over strict accounting, so
// I/O failures degrade to defaults instead of reaching the chat surface.
type Ledger struct {
	path string
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Load returns the full score list, creating an empty persisted collection
// if none exists. Read or decode failures are logged and degrade to an
// empty list.
func (l *Ledger) Load() []Score {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(l.path, []byte("[]"), 0644); werr != nil {
			slog.Error("creating score file", "path", l.path, "error", werr)
		}
		return nil
	}
	if err != nil {
		slog.Error("reading scores", "path", l.path, "error", err)
		return nil
	}

	var scores []Score
	if err := json.Unmarshal(data, &scores); err != nil {
		slog.Error("decoding scores", "path", l.path, "error", err)
		return nil
	}

	return scores
}

// Award adds points to username, inserting a new entry on a first score.
// A write failure is logged and the award is lost; the session goes on.
func (l *Ledger) Award(username string, points int) {
	scores := l.Load()

	found := false
	for i := range scores {
		if scores[i].Username == username {
			scores[i].Score += points
			found = true
			break
		}
	}
	if !found {
		scores = append(scores, Score{Username: username, Score: points})
	}

	data, err := json.Marshal(scores)
	if err != nil {
		slog.Error("encoding scores", "path", l.path, "error", err)
		return
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		slog.Error("writing scores", "path", l.path, "error", err)
	}
}

// Lookup returns username's current score, or 0 if absent or unreadable.
func (l *Ledger) Lookup(username string) int {
	for _, s := range l.Load() {
		if s.Username == username {
			return s.Score
		}
	}
	return 0
}

// Leaderboard returns all entries sorted by score descending. Ties keep
// their storage order.
func (l *Ledger) Leaderboard() []Score {
	scores := l.Load()
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
