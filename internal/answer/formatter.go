// Package answer renders knowledge records as user-facing replies.
package answer

import (
	"fmt"
	"strings"

	"medical-qa-bot/internal/models"
)

// Answer is one rendered reply kind. Each intent has its own type.
type Answer interface {
	Intent() models.Intent
	Render() string
}

// SymptomAnswer lists up to ten symptoms.
type SymptomAnswer struct {
	Disease  string
	Symptoms []string
}

func (a SymptomAnswer) Intent() models.Intent { return models.IntentSymptom }

func (a SymptomAnswer) Render() string {
	if len(a.Symptoms) == 0 {
		return fmt.Sprintf(symptomEmptyTemplate, a.Disease)
	}
	shown := a.Symptoms
	if len(shown) > maxSymptoms {
		shown = shown[:maxSymptoms]
	}
	return fmt.Sprintf(symptomTemplate, a.Disease, strings.Join(shown, listSeparator))
}

// CauseAnswer quotes the cause text, truncated.
type CauseAnswer struct {
	Disease string
	Cause   string
}

func (a CauseAnswer) Intent() models.Intent { return models.IntentCause }

func (a CauseAnswer) Render() string {
	if a.Cause == "" {
		return fmt.Sprintf(causeEmptyTemplate, a.Disease)
	}
	return fmt.Sprintf(causeTemplate, a.Disease, truncateRunes(a.Cause, maxCauseRunes))
}

// CureAnswer combines treatment methods, duration and cure probability.
type CureAnswer struct {
	Disease   string
	CureWays  []string
	Lasttime  string
	CuredProb string
}

func (a CureAnswer) Intent() models.Intent { return models.IntentCure }

func (a CureAnswer) Render() string {
	if len(a.CureWays) == 0 && a.Lasttime == "" && a.CuredProb == "" {
		return fmt.Sprintf(cureEmptyTemplate, a.Disease)
	}

	lines := []string{fmt.Sprintf(cureHeaderTemplate, a.Disease)}
	if len(a.CureWays) > 0 {
		lines = append(lines, fmt.Sprintf(cureWayTemplate, strings.Join(a.CureWays, listSeparator)))
	}
	if a.Lasttime != "" {
		lines = append(lines, fmt.Sprintf(cureLasttimeTemplate, a.Lasttime))
	}
	if a.CuredProb != "" {
		lines = append(lines, fmt.Sprintf(curedProbTemplate, a.CuredProb))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// DescriptionAnswer quotes the description, truncated.
type DescriptionAnswer struct {
	Disease string
	Desc    string
}

func (a DescriptionAnswer) Intent() models.Intent { return models.IntentDescription }

func (a DescriptionAnswer) Render() string {
	if a.Desc == "" {
		return fmt.Sprintf(descEmptyTemplate, a.Disease)
	}
	return fmt.Sprintf(descTemplate, a.Disease, truncateRunes(a.Desc, maxDescRunes))
}

// Build selects the answer type for an intent. ok is false for unknown intents.
func Build(intent models.Intent, record *models.KnowledgeRecord) (Answer, bool) {
	switch intent {
	case models.IntentSymptom:
		return SymptomAnswer{Disease: record.Name, Symptoms: record.Symptom}, true
	case models.IntentCause:
		return CauseAnswer{Disease: record.Name, Cause: record.Cause}, true
	case models.IntentCure:
		return CureAnswer{
			Disease:   record.Name,
			CureWays:  record.CureWay,
			Lasttime:  record.CureLasttime,
			CuredProb: record.CuredProb,
		}, true
	case models.IntentDescription:
		return DescriptionAnswer{Disease: record.Name, Desc: record.Desc}, true
	}
	return nil, false
}

// Formatter renders records for intents.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns the reply text for intent. It never fails.
func (f *Formatter) Format(intent models.Intent, record *models.KnowledgeRecord) string {
	a, ok := Build(intent, record)
	if !ok {
		return Unsupported
	}
	return a.Render()
}

// truncateRunes cuts s to limit code points and marks the cut.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
