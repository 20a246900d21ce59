package outfit

import (
	"time"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// State is the position of a session in the question flow.
type State string

const (
	StateAsking     State = "asking"
	StateGenerating State = "generating"
	StateResult     State = "result"
)

// Session walks a user through the questions and holds the generated outfit.
//
//	asking(i) --answer--> asking(i+1)
//	asking(last) --answer--> generating --complete--> result
//	result --reset--> asking(0)
type Session struct {
	ID            string        `json:"id"`
	Owner         string        `json:"owner"`
	State         State         `json:"state"`
	QuestionIndex int           `json:"questionIndex"`
	Answers       Answers       `json:"answers"`
	Result        *ScoredOutfit `json:"result,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// NewSession starts a session at the first question.
func NewSession(id, owner string, now time.Time) Session {
	return Session{ID: id, Owner: owner, State: StateAsking, Answers: Answers{}, UpdatedAt: now}
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.State != StateAsking || s.QuestionIndex < 0 || s.QuestionIndex >= len(questions) {
		return Question{}, false
	}
	return questions[s.QuestionIndex], true
}

// Answer records an answer to the current question and advances. It reports
// true when the last question was answered and the session is generating.
func (s *Session) Answer(a Answer, now time.Time) (bool, error) {
	q, ok := s.CurrentQuestion()
	if !ok {
		return false, apperrors.Wrap(apperrors.CodeInvalidState, "session is not waiting for an answer", nil)
	}
	a, err := coerce(q, a)
	if err != nil {
		return false, err
	}
	if s.Answers == nil {
		s.Answers = Answers{}
	}
	s.Answers[q.ID] = a
	s.UpdatedAt = now
	if s.QuestionIndex+1 < len(questions) {
		s.QuestionIndex++
		return false, nil
	}
	s.State = StateGenerating
	return true, nil
}

// Complete stores the generated outfit.
func (s *Session) Complete(result ScoredOutfit, now time.Time) error {
	if s.State != StateGenerating {
		return apperrors.Wrap(apperrors.CodeInvalidState, "session is not generating", nil)
	}
	s.State = StateResult
	s.Result = &result
	s.UpdatedAt = now
	return nil
}

// Reset clears all answers and returns to the first question. Only a finished
// session can be reset.
func (s *Session) Reset(now time.Time) error {
	if s.State != StateResult {
		return apperrors.Wrap(apperrors.CodeInvalidState, "only a finished session can be reset", nil)
	}
	s.State = StateAsking
	s.QuestionIndex = 0
	s.Answers = Answers{}
	s.Result = nil
	s.UpdatedAt = now
	return nil
}

func coerce(q Question, a Answer) (Answer, error) {
	switch q.Type {
	case QuestionTypeText:
		if a.IsList {
			return Answer{}, apperrors.Wrap(apperrors.CodeInvalidInput, q.ID+" expects a text answer", nil)
		}
	case QuestionTypeMultiselect:
		if !a.IsList {
			if a.Text == "" {
				return ListAnswer(), nil
			}
			return ListAnswer(a.Text), nil
		}
	}
	return a, nil
}
