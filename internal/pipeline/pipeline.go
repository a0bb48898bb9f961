// Package pipeline turns a question into exactly one reply.
package pipeline

import (
	"context"
	"time"

	"medical-qa-bot/internal/answer"
	"medical-qa-bot/internal/common/logger"
	"medical-qa-bot/internal/knowledge"
	"medical-qa-bot/internal/models"
)

// Outcome names the branch of the decision tree that produced a reply.
type Outcome string

const (
	OutcomeGreeting            Outcome = "greeting"
	OutcomeDiseaseUnrecognized Outcome = "disease_unrecognized"
	OutcomeNotFound            Outcome = "not_found"
	OutcomeAnswered            Outcome = "answered"
)

// Classifier analyses a question.
type Classifier interface {
	Classify(question string) models.Classification
}

// Recorder receives one event per reply.
type Recorder interface {
	RecordAnswer(outcome, intent string)
}

// Observer receives answer timings.
type Observer interface {
	ObserveAnswer(ctx context.Context, outcome string, duration time.Duration)
}

// Result explains how a reply was produced.
type Result struct {
	Question       string                `json:"question"`
	Outcome        Outcome               `json:"outcome"`
	Classification models.Classification `json:"classification"`
	Disease        string                `json:"disease,omitempty"`
	Intent         models.Intent         `json:"intent,omitempty"`
	Text           string                `json:"text"`
}

// Pipeline holds only read-only collaborators and is safe for concurrent use.
type Pipeline struct {
	classifier Classifier
	store      knowledge.Store
	formatter  *answer.Formatter
	logger     logger.Logger
	recorder   Recorder
	observer   Observer
}

// Option configures optional collaborators.
type Option func(*Pipeline)

func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

func New(classifier Classifier, store knowledge.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier: classifier,
		store:      store,
		formatter:  answer.NewFormatter(),
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Answer returns the reply text. It never fails.
func (p *Pipeline) Answer(question string) string {
	return p.Resolve(context.Background(), question).Text
}

// Resolve runs the decision tree: greeting, unrecognized disease, missing
// record, formatted answer. Only the first disease and first intent count.
func (p *Pipeline) Resolve(ctx context.Context, question string) Result {
	start := time.Now()
	result := p.resolve(question)

	if p.recorder != nil {
		p.recorder.RecordAnswer(string(result.Outcome), string(result.Intent))
	}
	if p.observer != nil {
		p.observer.ObserveAnswer(ctx, string(result.Outcome), time.Since(start))
	}
	p.logger.Debug("Question resolved", map[string]interface{}{
		"outcome":  string(result.Outcome),
		"entities": result.Classification.Entities.ToMap(),
		"intents":  result.Classification.Intents,
		"disease":  result.Disease,
		"intent":   string(result.Intent),
	})
	return result
}

func (p *Pipeline) resolve(question string) Result {
	c := p.classifier.Classify(question)
	result := Result{Question: question, Classification: c}

	intent, hasIntent := c.PrimaryIntent()
	if c.Entities.IsEmpty() || !hasIntent {
		result.Outcome = OutcomeGreeting
		result.Text = answer.Greeting
		return result
	}

	disease, hasDisease := c.PrimaryDisease()
	if !hasDisease {
		result.Outcome = OutcomeDiseaseUnrecognized
		result.Text = answer.DiseaseUnrecognized
		return result
	}
	result.Disease = disease

	record, found := p.store.Lookup(disease)
	if !found {
		result.Outcome = OutcomeNotFound
		result.Text = answer.RecordNotFound
		return result
	}

	result.Outcome = OutcomeAnswered
	result.Intent = intent
	result.Text = p.formatter.Format(intent, record)
	return result
}
