// internal/models/intent.go
package models

// Intent tags the kind of answer a question asks for.
type Intent string

const (
	IntentSymptom     Intent = "disease_symptom"
	IntentCause       Intent = "disease_cause"
	IntentCure        Intent = "disease_cure"
	IntentDescription Intent = "disease_desc"
)

// Classification is the analysis of one question.
type Classification struct {
	Entities MatchResult `json:"entities"`
	Intents  []Intent    `json:"intents"`
}

// PrimaryIntent returns the first intent, the only one that is answered.
func (c Classification) PrimaryIntent() (Intent, bool) {
	if len(c.Intents) == 0 {
		return "", false
	}
	return c.Intents[0], true
}

// PrimaryDisease returns the first matched disease in dictionary order.
func (c Classification) PrimaryDisease() (string, bool) {
	diseases := c.Entities.Words(CategoryDisease)
	if len(diseases) == 0 {
		return "", false
	}
	return diseases[0], true
}
