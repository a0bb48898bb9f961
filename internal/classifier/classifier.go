// Package classifier recognizes dictionary entities and answer intents in a question.
package classifier

import "medical-qa-bot/internal/models"

// Classifier runs entity matching followed by intent classification.
type Classifier struct {
	matcher *Matcher
	intents *IntentClassifier
}

func New(words WordSource) *Classifier {
	return &Classifier{
		matcher: NewMatcher(words),
		intents: NewIntentClassifier(),
	}
}

// Classify is pure and safe for concurrent use.
func (c *Classifier) Classify(question string) models.Classification {
	entities := c.matcher.Match(question)
	return models.Classification{
		Entities: entities,
		Intents:  c.intents.Classify(question, entities),
	}
}
