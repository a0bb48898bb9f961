// Package chat drives the interactive console and the scripted demo.
package chat

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/common/logger"
	"medical-qa-bot/internal/models"
	"medical-qa-bot/internal/pipeline"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Answerer produces one reply per question.
type Answerer interface {
	Resolve(ctx context.Context, question string) pipeline.Result
}

// REPL reads questions line by line until an exit token, EOF or cancellation.
type REPL struct {
	answerer   Answerer
	botName    string
	exitTokens map[string]struct{}
	lower      cases.Caser
	logger     logger.Logger
}

func NewREPL(answerer Answerer, cfg config.BotConfig, log logger.Logger) *REPL {
	lower := cases.Lower(language.Und)
	tokens := cfg.ExitTokens
	if len(tokens) == 0 {
		tokens = config.DefaultExitTokens
	}
	exit := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		exit[lower.String(strings.TrimSpace(t))] = struct{}{}
	}

	name := cfg.Name
	if name == "" {
		name = "小勇"
	}
	return &REPL{
		answerer:   answerer,
		botName:    name,
		exitTokens: exit,
		lower:      lower,
		logger:     log,
	}
}

// IsExit reports whether a line ends the session. Case and surrounding
// whitespace are ignored.
func (r *REPL) IsExit(line string) bool {
	_, ok := r.exitTokens[r.lower.String(strings.TrimSpace(line))]
	return ok
}

type lineResult struct {
	line string
	err  error
}

// readLines feeds lines from in until EOF or an error, or until done closes.
// A final line without a newline is still delivered.
func readLines(in io.Reader, done <-chan struct{}) <-chan lineResult {
	out := make(chan lineResult)
	go func() {
		defer close(out)
		br := bufio.NewReader(in)
		for {
			s, err := br.ReadString('\n')
			if s != "" {
				select {
				case out <- lineResult{line: strings.TrimRight(s, "\r\n")}:
				case <-done:
					return
				}
			}
			if err != nil {
				select {
				case out <- lineResult{err: err}:
				case <-done:
				}
				return
			}
		}
	}()
	return out
}

// Run prints the banner and answers questions. Cancelling ctx behaves like
// an interrupt: the farewell is printed and Run returns nil.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	session := models.NewSession(uuid.NewString())
	log := r.logger.With(map[string]interface{}{"sessionId": session.ID})
	log.Info("Chat session started", nil)

	p := &printer{w: out}
	p.println(banner)
	p.println(chatTitle)
	p.println(exitHint)
	p.println(banner)

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	var readErr error
	for p.err == nil {
		p.print(userPrompt)

		var next lineResult
		var open bool
		select {
		case <-ctx.Done():
			p.println("\n\n" + farewell)
			r.logEnd(log, session, "interrupted")
			return p.err
		case next, open = <-lines:
		}

		if !open || next.err != nil {
			if open && !errors.Is(next.err, io.EOF) {
				readErr = next.err
			}
			p.println("\n\n" + farewell)
			r.logEnd(log, session, "eof")
			break
		}

		if r.IsExit(next.line) {
			p.println(farewell)
			r.logEnd(log, session, "exit")
			break
		}

		session.UpdateActivity()
		result := r.answerer.Resolve(ctx, next.line)
		log.Debug("Question answered", map[string]interface{}{
			"requestId": uuid.NewString(),
			"outcome":   string(result.Outcome),
		})

		p.printf("%s: %s\n", r.botName, result.Text)
		p.println(separator)
	}

	if readErr != nil {
		return readErr
	}
	return p.err
}

func (r *REPL) logEnd(log logger.Logger, session *models.Session, reason string) {
	log.Info("Chat session ended", map[string]interface{}{
		"reason":    reason,
		"questions": session.Questions,
		"duration":  session.Duration().Round(time.Millisecond).String(),
	})
}
