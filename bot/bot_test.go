package bot

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quizkit/quizbot/config"
	"github.com/quizkit/quizbot/store"
)

var (
	adminUser  = User{ID: "U-admin", Name: "admin"}
	playerUser = User{ID: "U-player", Name: "player"}
)

type sentMsg struct {
	channel ChannelRef
	text    string
}

type fakeGateway struct {
	channels map[string]ChannelRef
	sent     []sentMsg
	presence Presence
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		channels: map[string]ChannelRef{
			"game": {ID: "C1", Name: "game"},
		},
	}
}

func (g *fakeGateway) ChannelByName(name string) (ChannelRef, error) {
	ch, ok := g.channels[name]
	if !ok {
		return ChannelRef{}, fmt.Errorf("channel %q not found", name)
	}
	return ch, nil
}

func (g *fakeGateway) UserByID(id string) (User, bool) {
	return User{ID: id}, true
}

func (g *fakeGateway) Send(ch ChannelRef, text string) error {
	g.sent = append(g.sent, sentMsg{channel: ch, text: text})
	return nil
}

func (g *fakeGateway) OpenDM(userID string, fn func(ChannelRef)) {
	fn(ChannelRef{ID: "D-" + userID, Name: "dm-" + userID, DM: true})
}

func (g *fakeGateway) CloseDM(ch ChannelRef) {}

func (g *fakeGateway) SetPresence(p Presence) error {
	g.presence = p
	return nil
}

func (g *fakeGateway) channelTexts() []string {
	var texts []string
	for _, m := range g.sent {
		if !m.channel.DM {
			texts = append(texts, m.text)
		}
	}
	return texts
}

func (g *fakeGateway) dmTexts() []string {
	var texts []string
	for _, m := range g.sent {
		if m.channel.DM {
			texts = append(texts, m.text)
		}
	}
	return texts
}

type step struct {
	delay time.Duration
	fn    func()
}

// testBot runs the bot against the fake gateway with scheduled steps
// captured instead of armed, so tests fire them deterministically.
type testBot struct {
	*Bot
	gw    *fakeGateway
	steps []step
}

func newTestBot(t *testing.T, questionsDoc string, mod func(*config.Config)) *testBot {
	t.Helper()

	dir := t.TempDir()
	questionsPath := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(questionsPath, []byte(questionsDoc), 0644))

	cfg := config.Default()
	cfg.Admins = []string{adminUser.ID}
	cfg.QuestionsPath = questionsPath
	cfg.ScoresPath = filepath.Join(dir, "scores.json")
	if mod != nil {
		mod(&cfg)
	}

	msgs, err := LoadMessages("")
	require.NoError(t, err)

	gw := newFakeGateway()
	b, err := New(cfg, gw, msgs, store.NewLedger(cfg.ScoresPath), store.NewQuestionSource(cfg.QuestionsPath))
	require.NoError(t, err)

	tb := &testBot{Bot: b, gw: gw}
	b.after = func(d time.Duration, fn func()) {
		tb.steps = append(tb.steps, step{delay: d, fn: fn})
	}
	return tb
}

// fireNext runs the oldest pending scheduled step and returns the delay it
// was scheduled with.
func (tb *testBot) fireNext(t *testing.T) time.Duration {
	t.Helper()
	require.NotEmpty(t, tb.steps, "no scheduled step pending")

	s := tb.steps[0]
	tb.steps = tb.steps[1:]
	s.fn()
	return s.delay
}

func (tb *testBot) fireAll(t *testing.T) {
	t.Helper()
	for len(tb.steps) > 0 {
		tb.fireNext(t)
	}
}

// activeResponse returns the active question's response pattern, which for
// the plain-word fixtures doubles as a correct answer.
func (tb *testBot) activeResponse(t *testing.T) string {
	t.Helper()
	tb.mu.Lock()
	defer tb.mu.Unlock()
	require.NotNil(t, tb.session.Current, "no active question")
	return tb.session.Current.Response
}

func (tb *testBot) status() Status {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.session.Status
}

func channelEvent(u User, text string) Event {
	return Event{
		Channel:   ChannelRef{ID: "C1", Name: "game"},
		User:      u,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func dmEvent(u User, text string) Event {
	return Event{
		Channel:   ChannelRef{ID: "D-" + u.ID, Name: "dm-" + u.ID, DM: true},
		User:      u,
		Text:      text,
		Timestamp: time.Now(),
	}
}

const twoQuestionsDoc = `[
	{"question": "2+2?", "response": "4"},
	{"question": "capital of France?", "response": "paris"}
]`
