package outfit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Question ids used by the preference flow.
const (
	QuestionOccasion = "occasion"
	QuestionStyle    = "style"
	QuestionColors   = "colors"
	QuestionWeather  = "weather"
)

// Answer holds a single free-text answer or a list of selected options.
type Answer struct {
	Text    string
	Choices []string
	IsList  bool
}

// TextAnswer builds a free-text answer.
func TextAnswer(s string) Answer { return Answer{Text: s} }

// ListAnswer builds a multi-select answer.
func ListAnswer(choices ...string) Answer {
	if choices == nil {
		choices = []string{}
	}
	return Answer{Choices: choices, IsList: true}
}

// String renders the answer as text; lists are comma joined.
func (a Answer) String() string {
	if a.IsList {
		return strings.Join(a.Choices, ",")
	}
	return a.Text
}

// IsZero reports whether nothing was answered.
func (a Answer) IsZero() bool {
	if a.IsList {
		return len(a.Choices) == 0
	}
	return a.Text == ""
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsList {
		choices := a.Choices
		if choices == nil {
			choices = []string{}
		}
		return json.Marshal(choices)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Answer{}
		return nil
	case len(data) > 0 && data[0] == '[':
		var choices []string
		if err := json.Unmarshal(data, &choices); err != nil {
			return fmt.Errorf("answer list: %w", err)
		}
		*a = ListAnswer(choices...)
		return nil
	default:
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("answer must be a string or a list of strings: %w", err)
		}
		*a = TextAnswer(text)
		return nil
	}
}

// Answers maps question ids to answers.
type Answers map[string]Answer
