// internal/classifier/intent.go
package classifier

import (
	"strings"

	"medical-qa-bot/internal/models"
)

type cueSet struct {
	intent models.Intent
	cues   []string
}

// intentCues is evaluated top to bottom; the first tag wins downstream.
var intentCues = []cueSet{
	{intent: models.IntentSymptom, cues: []string{"症状", "表征", "现象", "症候", "表现", "有哪些"}},
	{intent: models.IntentCause, cues: []string{"原因", "成因", "为什么", "怎么会", "怎样才", "咋样才", "怎样会", "如何会", "为啥", "为何"}},
	{intent: models.IntentCure, cues: []string{"治疗", "怎么治", "如何治", "怎么办", "多久", "周期", "治愈"}},
	{intent: models.IntentDescription, cues: []string{"是什么", "介绍", "描述", "说明"}},
}

// Cues returns a copy of the cue words for an intent.
func Cues(intent models.Intent) []string {
	for _, set := range intentCues {
		if set.intent == intent {
			return append([]string(nil), set.cues...)
		}
	}
	return nil
}

// IntentClassifier maps cue words to intent tags. Intents only apply when a
// disease was recognized.
type IntentClassifier struct{}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

// Classify returns intents in priority order. A recognized disease with no
// cue defaults to a description.
func (c *IntentClassifier) Classify(question string, entities models.MatchResult) []models.Intent {
	if !entities.Has(models.CategoryDisease) {
		return nil
	}

	var intents []models.Intent
	for _, set := range intentCues {
		if containsAny(question, set.cues) {
			intents = append(intents, set.intent)
		}
	}
	if len(intents) == 0 {
		intents = append(intents, models.IntentDescription)
	}
	return intents
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
