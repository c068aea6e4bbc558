// internal/workflow/questions.go
package workflow

import "tara/internal/models"

// Question is one contextual prompt shown between destination selection and
// submission. Keys feed the travel-context map sent to the planning service.
type Question struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

// QuestionProvider supplies the contextual questions for a destination and
// application type. Implementations may personalize per country; the
// default does not.
type QuestionProvider interface {
	Questions(country string, appType models.ApplicationType) []Question
}

// StaticQuestions is the default provider: the same reason/duration pair
// for every destination. Downstream consumers depend on these two keys.
type StaticQuestions struct{}

func (StaticQuestions) Questions(country string, appType models.ApplicationType) []Question {
	return []Question{
		{Key: "reason", Prompt: "What is your primary reason for this move?"},
		{Key: "duration", Prompt: "How long do you intend to stay?"},
	}
}
