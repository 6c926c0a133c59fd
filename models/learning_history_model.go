package models

import "math"

// LearningHistory accumulates one user's playthrough results.
type LearningHistory struct {
	TotalQuizzes int          `json:"totalQuizzes"`
	TotalScore   int          `json:"totalScore"`
	AverageScore int          `json:"averageScore"`
	BestScore    int          `json:"bestScore"`
	QuizHistory  []QuizRecord `json:"quizHistory"`
}

type QuizRecord struct {
	ID             string `json:"id"`
	CategoryID     string `json:"categoryId"`
	CategoryName   string `json:"categoryName"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	CompletedAt    string `json:"completedAt"`
}

// NewLearningHistory returns the zeroed shape stored for fresh users.
func NewLearningHistory() *LearningHistory {
	return &LearningHistory{QuizHistory: []QuizRecord{}}
}

// Append records one finished quiz and rolls the aggregates forward.
func (h *LearningHistory) Append(rec QuizRecord) {
	h.QuizHistory = append(h.QuizHistory, rec)
	h.TotalQuizzes++
	h.TotalScore += rec.Score
	h.AverageScore = int(math.Round(float64(h.TotalScore) / float64(h.TotalQuizzes)))
	if rec.Score > h.BestScore {
		h.BestScore = rec.Score
	}
}
