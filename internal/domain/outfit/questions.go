package outfit

// QuestionType tells the client how to render a question.
type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeMultiselect QuestionType = "multiselect"
)

// Question is one step of the preference flow.
type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

var questions = []Question{
	{
		ID:          QuestionOccasion,
		Text:        "What's the occasion?",
		Type:        QuestionTypeText,
		Placeholder: "e.g., Work meeting, Date night, Casual outing",
	},
	{
		ID:      QuestionStyle,
		Text:    "Preferred style for this occasion?",
		Type:    QuestionTypeMultiselect,
		Options: []string{"Professional", "Casual", "Elegant", "Trendy", "Sporty"},
	},
	{
		ID:      QuestionColors,
		Text:    "Any color preferences?",
		Type:    QuestionTypeMultiselect,
		Options: []string{"Neutral", "Bright", "Dark", "Pastel", "Monochrome"},
	},
	{
		ID:      QuestionWeather,
		Text:    "Current weather conditions?",
		Type:    QuestionTypeMultiselect,
		Options: []string{"Sunny", "Rainy", "Cold", "Hot", "Mild"},
	},
}

// Questions returns a copy of the preference questions in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}
