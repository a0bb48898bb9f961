// internal/chat/demo.go
package chat

import (
	"context"
	"io"
)

// Demo answers a fixed list of questions.
type Demo struct {
	answerer  Answerer
	botName   string
	questions []string
}

func NewDemo(answerer Answerer, botName string, questions []string) *Demo {
	if botName == "" {
		botName = "小勇"
	}
	return &Demo{answerer: answerer, botName: botName, questions: questions}
}

// Run prints each question and its reply. It stops early if ctx is cancelled.
func (d *Demo) Run(ctx context.Context, out io.Writer) error {
	p := &printer{w: out}
	p.println(banner)
	p.println(demoTitle)
	p.println(banner)

	for _, q := range d.questions {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.printf("%s%s\n", userPrompt, q)
		p.printf("%s: %s\n", d.botName, d.answerer.Resolve(ctx, q).Text)
		p.println(separator)
	}
	return p.err
}
