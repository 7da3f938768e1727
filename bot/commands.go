package bot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"
)

// A message is a command when it is exactly the prefix character, a run of
// lowercase letters and an optional argument tail. Anything else is
// ordinary conversation.
var cmdPattern = regexp.MustCompile(`^!([a-z]+)(\s+(.*))?$`)

// minStartDelay is the floor applied to the configured start delay
// whenever a session start is requested.
const minStartDelay = 5

//go:embed cmds.json
var defaultCmds []byte

// command is one entry of the dispatch table, built once at startup from
// the command catalog and never mutated afterwards.
type command struct {
	run    func(*Bot, string, Event)
	public bool
	desc   string
}

type cmdSpec struct {
	Cmd    string `json:"cmd"`
	Public bool   `json:"public"`
	Desc   string `json:"desc"`
}

var cmdHandlers = map[string]func(*Bot, string, Event){
	"disable": (*Bot).cmdDisable,
	"enable":  (*Bot).cmdEnable,
	"start":   (*Bot).cmdStart,
	"stop":    (*Bot).cmdStop,
	"score":   (*Bot).cmdScore,
	"myscore": (*Bot).cmdMyScore,
	"repeat":  (*Bot).cmdRepeat,
	"help":    (*Bot).cmdHelp,
}

// loadCommands builds the dispatch table from the catalog at path, or from
// the embedded default when path is empty. The catalog order is preserved
// for help listings. A catalog entry naming a command with no compiled-in
// handler is a startup error.
func loadCommands(path string) (map[string]command, []string, error) {
	data := defaultCmds
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read commands %s: %w", path, err)
		}
		data = b
	}

	var specs []cmdSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, nil, fmt.Errorf("decode commands: %w", err)
	}

	cmds := make(map[string]command, len(specs))
	order := make([]string, 0, len(specs))
	for _, spec := range specs {
		run, ok := cmdHandlers[spec.Cmd]
		if !ok {
			return nil, nil, fmt.Errorf("unknown command %q in catalog", spec.Cmd)
		}
		cmds[spec.Cmd] = command{run: run, public: spec.Public, desc: spec.Desc}
		order = append(order, spec.Cmd)
	}

	return cmds, order, nil
}

// isAdmin checks the configured allow-list first and falls back to the
// transport's own admin flag.
func (b *Bot) isAdmin(u User) bool {
	for _, id := range b.cfg.Admins {
		if u.ID == id {
			return true
		}
	}
	return u.Admin
}

// route executes ev if it carries a known, authorized command and reports
// whether it did. Unknown keywords and unauthorized senders get no reply,
// so nothing leaks about which commands exist; the message then flows on
// as ordinary conversation.
func (b *Bot) route(ev Event) bool {
	m := cmdPattern.FindStringSubmatch(ev.Text)
	if m == nil {
		return false
	}

	keyword := strings.ToLower(m[1])
	cmd, ok := b.cmds[keyword]
	if !ok {
		return false
	}
	if !cmd.public && !b.isAdmin(ev.User) {
		return false
	}

	// Handlers reply to the public quiz room even when the command came in
	// over a DM, so the operative channel is rebound before every command.
	if ch, err := b.gw.ChannelByName(b.cfg.Channel); err == nil {
		b.session.Channel = ch
	} else {
		slog.Error("resolving quiz channel", "channel", b.cfg.Channel, "error", err)
	}

	slog.Info("command", "cmd", keyword, "user", ev.User.Display())
	cmd.run(b, m[3], ev)
	return true
}

func (b *Bot) cmdDisable(args string, ev Event) {
	if b.session.Status != StatusEnabled {
		return
	}

	if err := b.gw.SetPresence(PresenceAway); err != nil {
		slog.Error("setting presence", "error", err)
	}
	b.session.Status = StatusDisabled
	b.session.Questions = nil
	b.session.Current = nil
	slog.Info("quizbot disabled")
}

func (b *Bot) cmdEnable(args string, ev Event) {
	if b.session.Status != StatusDisabled {
		return
	}

	if err := b.gw.SetPresence(PresenceActive); err != nil {
		slog.Error("setting presence", "error", err)
	}
	b.session.Status = StatusEnabled
	slog.Info("quizbot enabled")
}

func (b *Bot) cmdStart(args string, ev Event) {
	if b.session.Status != StatusEnabled {
		return
	}

	delay := b.cfg.QuizStartTime
	if delay < minStartDelay {
		delay = minStartDelay
	}

	b.session.Questions = b.questions.Pool(b.cfg.QuizLimit)
	if len(b.session.Questions) == 0 {
		b.send(b.session.Channel, b.msgs.Render("no_questions"))
		return
	}

	b.session.Status = StatusRunning
	b.session.Generation++
	b.session.Current = nil
	b.session.Answered = false
	slog.Info("quizbot started", "questions", len(b.session.Questions), "delay", delay)

	b.send(b.session.Channel, b.msgs.Render("quiz_start", delay, b.cfg.QuizLimit))
	b.schedule(time.Duration(delay)*time.Second, b.askQuestion)
}

func (b *Bot) cmdStop(args string, ev Event) {
	if b.session.Status != StatusRunning {
		return
	}

	b.session.Status = StatusEnabled
	b.session.Current = nil
	slog.Info("quizbot stopped")
	b.send(b.session.Channel, b.msgs.Render("stopped"))
}

func (b *Bot) cmdScore(args string, ev Event) {
	if b.session.Status != StatusRunning {
		return
	}
	if _, ok := b.gw.UserByID(ev.User.ID); !ok {
		return
	}

	lines := []string{b.msgs.Render("score_header")}
	for i, s := range b.ledger.Leaderboard() {
		medal := ""
		if i == 0 {
			medal = " :sports_medal:"
		}
		lines = append(lines, b.msgs.Render("score_line", i+1, s.Username, s.Score, medal))
	}

	b.dm(ev.User.ID, strings.Join(lines, "\n"))
}

func (b *Bot) cmdMyScore(args string, ev Event) {
	if b.session.Status != StatusRunning {
		return
	}

	text := b.msgs.Render("no_score")
	if score := b.ledger.Lookup(ev.User.Display()); score > 0 {
		text = b.msgs.Render("my_score", score)
	}

	b.dm(ev.User.ID, text)
}

func (b *Bot) cmdRepeat(args string, ev Event) {
	if b.session.Status != StatusRunning || b.session.Current == nil {
		return
	}

	b.dm(ev.User.ID, b.msgs.Render("question", b.session.Current.Question))
}

func (b *Bot) cmdHelp(args string, ev Event) {
	if b.session.Status == StatusDisabled {
		return
	}
	if _, ok := b.gw.UserByID(ev.User.ID); !ok {
		return
	}

	admin := b.isAdmin(ev.User)
	lines := []string{b.msgs.Render("help_header")}
	for _, keyword := range b.cmdOrder {
		cmd := b.cmds[keyword]
		if !cmd.public && !admin {
			continue
		}
		lines = append(lines, b.msgs.Render("help_line", keyword, cmd.desc))
	}

	b.dm(ev.User.ID, strings.Join(lines, "\n"))
}
