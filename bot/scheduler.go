package bot

import "time"

const (
	// Delay between the congratulation and the answer reveal.
	revealDelay = 2 * time.Second
	// Delay between the answer reveal and the next-question countdown.
	countdownDelay = 3 * time.Second
)

// schedule runs fn after d on the bot's single logical execution context.
// The session generation is captured now and verified again when the timer
// fires; a stop or a fresh start in between makes the step stale and it is
// dropped without effect.
func (b *Bot) schedule(d time.Duration, fn func()) {
	gen := b.session.Generation
	b.after(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.session.Status != StatusRunning || b.session.Generation != gen {
			return
		}
		fn()
	})
}

// askQuestion posts the next valid question to the quiz channel and opens
// its answer window. Entries that became malformed after load are skipped
// outright; an exhausted pool ends question delivery silently. Callers
// must hold the session mutex.
func (b *Bot) askQuestion() {
	for len(b.session.Questions) > 0 {
		q := b.session.Questions[0]
		b.session.Questions = b.session.Questions[1:]
		if !q.Valid() {
			continue
		}

		b.session.Current = &q
		b.session.Answered = false
		b.send(b.session.Channel, b.msgs.Render("question", q.Question))
		return
	}

	b.session.Current = nil
}

// checkAnswer tests an inbound quiz-channel message against the active
// question. The first match closes the round's answer window, awards the
// base points and drives the reveal chain: congratulation now, answer and
// new total after revealDelay, countdown after countdownDelay more, next
// question after the configured delay. Callers must hold the session
// mutex.
func (b *Bot) checkAnswer(ev Event) {
	if b.session.Status != StatusRunning || b.session.Current == nil || b.session.Answered {
		return
	}
	if !Match(b.session.Current.Response, ev.Text) {
		return
	}

	b.session.Answered = true
	username := ev.User.Display()
	response := b.session.Current.Response

	b.send(b.session.Channel, b.msgs.Render("right_answer", username))
	b.ledger.Award(username, b.cfg.QuizBasePoint)

	b.schedule(revealDelay, func() {
		b.send(b.session.Channel, b.msgs.Render("give_answer", response))
		b.send(b.session.Channel, b.msgs.Render("give_score", username, b.cfg.QuizBasePoint, b.ledger.Lookup(username)))

		b.schedule(countdownDelay, func() {
			b.send(b.session.Channel, b.msgs.Render("next_question_in", b.cfg.QuizNextQuestionDelay))
			b.schedule(time.Duration(b.cfg.QuizNextQuestionDelay)*time.Second, b.askQuestion)
		})
	})
}
