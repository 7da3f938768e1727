package store

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"regexp"
)

// Question pairs the text asked in the channel with the pattern a correct
// answer must match. Response is user-supplied regular expression text,
// tested case-insensitively, not a literal string.
type Question struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// Valid reports whether the question can be asked: both fields present and
// the response compiling as a pattern.
func (q Question) Valid() bool {
	if q.Question == "" || q.Response == "" {
		return false
	}
	_, err := regexp.Compile("(?im)(" + q.Response + ")")
	return err == nil
}

// QuestionSource reads the static question file: a JSON array of
// {question, response} pairs, read in full once per session start.
type QuestionSource struct {
	path string
}

func NewQuestionSource(path string) *QuestionSource {
	return &QuestionSource{path: path}
}

// Pool returns up to limit questions drawn from a full shuffle of the
// source set. Malformed entries are dropped before the draw, so they can
// never become the active question. An unreadable or undecodable file is
// logged and degrades to an empty pool.
func (s *QuestionSource) Pool(limit int) []Question {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Error("reading questions", "path", s.path, "error", err)
		return nil
	}

	var all []Question
	if err := json.Unmarshal(data, &all); err != nil {
		slog.Error("decoding questions", "path", s.path, "error", err)
		return nil
	}

	valid := make([]Question, 0, len(all))
	for _, q := range all {
		if q.Valid() {
			valid = append(valid, q)
			continue
		}
		slog.Warn("skipping malformed question", "path", s.path, "question", q.Question)
	}

	rand.Shuffle(len(valid), func(i, j int) {
		valid[i], valid[j] = valid[j], valid[i]
	})

	if limit > 0 && len(valid) > limit {
		valid = valid[:limit]
	}

	return valid
}
