package models

// Question types as stored on the wire.
const (
	TypeSingle      = "single"
	TypeMultiple    = "multiple"
	TypeFillInBlank = "fill-in-the-blank"
)

type Question struct {
	Question         string   `json:"question"`
	QuestionImage    *string  `json:"questionImage"`
	QuestionType     string   `json:"questionType"`
	IsMultipleChoice bool     `json:"isMultipleChoice"`
	Answers          []Answer `json:"answers"`
	Explanation      string   `json:"explanation"`
	ExplanationImage *string  `json:"explanationImage"`
}

type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// normalize migrates documents written before questionType existed:
// those carry only the isMultipleChoice boolean. The legacy flag is
// kept in sync either way so older players keep working.
func (q *Question) normalize() {
	if q.QuestionType == "" {
		if q.IsMultipleChoice {
			q.QuestionType = TypeMultiple
		} else {
			q.QuestionType = TypeSingle
		}
	}
	q.IsMultipleChoice = q.QuestionType == TypeMultiple
	if q.Answers == nil {
		q.Answers = []Answer{}
	}
}

// CorrectAnswers returns the entries flagged correct, which for
// fill-in-the-blank questions is the full literal-answer set.
func (q *Question) CorrectAnswers() []Answer {
	var out []Answer
	for _, a := range q.Answers {
		if a.Correct {
			out = append(out, a)
		}
	}
	return out
}
