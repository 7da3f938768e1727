package bot

import "github.com/quizkit/quizbot/store"

// Status is the bot's operating mode.
type Status int

const (
	StatusDisabled Status = iota
	StatusEnabled
	StatusRunning
)

// Session is the single process-wide quiz session. The owning Bot's mutex
// guards every field. Generation increments on each start; a scheduled
// step captured under an older generation is stale and must not fire.
type Session struct {
	Status     Status
	Current    *store.Question
	Questions  []store.Question
	Channel    ChannelRef
	Answered   bool
	Generation uint64
}
