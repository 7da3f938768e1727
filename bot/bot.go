package bot

import (
	"log/slog"
	"sync"
	"time"

	"github.com/quizkit/quizbot/config"
	"github.com/quizkit/quizbot/store"
)

// Bot ties the transport gateway, command table, session state and stores
// together. Exactly one session exists per process; mu serializes inbound
// event handling with the scheduler's delayed steps, so at most one of
// them runs at a time.
type Bot struct {
	cfg  config.Config
	gw   Gateway
	msgs Catalog

	cmds     map[string]command
	cmdOrder []string

	ledger    *store.Ledger
	questions *store.QuestionSource

	mu      sync.Mutex
	session Session

	// after is time.AfterFunc unless a test substitutes it.
	after func(d time.Duration, fn func())
}

// New builds a bot from its collaborators. The command catalog is loaded
// here; a missing or inconsistent catalog aborts initialization. The
// session always boots Enabled.
func New(cfg config.Config, gw Gateway, msgs Catalog, ledger *store.Ledger, questions *store.QuestionSource) (*Bot, error) {
	cmds, order, err := loadCommands(cfg.Cmds)
	if err != nil {
		return nil, err
	}

	return &Bot{
		cfg:       cfg,
		gw:        gw,
		msgs:      msgs,
		cmds:      cmds,
		cmdOrder:  order,
		ledger:    ledger,
		questions: questions,
		session:   Session{Status: StatusEnabled},
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}, nil
}

// HandleEvent is the entry point for every inbound chat message. Commands
// are routed first; while disabled, only direct messages get a notice;
// otherwise quiz-channel traffic is tested against the active question.
func (b *Bot) HandleEvent(ev Event) {
	if ev.Text == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	slog.Debug("received", "channel", ev.Channel.Name, "user", ev.User.Display(), "text", ev.Text)

	if b.route(ev) {
		return
	}

	if b.session.Status == StatusDisabled {
		if ev.Channel.DM {
			name := "disabled"
			if b.isAdmin(ev.User) {
				name = "disabled_admin"
			}
			b.send(ev.Channel, b.msgs.Render(name))
		}
		return
	}

	if ev.Channel.Name == b.cfg.Channel {
		b.checkAnswer(ev)
	}
}

// send delivers text to ch, logging transport failures. Empty text, such
// as a missing template rendering, is dropped.
func (b *Bot) send(ch ChannelRef, text string) {
	if text == "" {
		return
	}
	if err := b.gw.Send(ch, text); err != nil {
		slog.Error("sending message", "channel", ch.Name, "error", err)
	}
}

// dm delivers text to the user over a direct channel, closing it after.
func (b *Bot) dm(userID, text string) {
	b.gw.OpenDM(userID, func(ch ChannelRef) {
		b.send(ch, text)
		b.gw.CloseDM(ch)
	})
}
