package dto

import "time"

type SubmitAttemptRequest struct {
	QuizID      string      `json:"quiz_id" validate:"required"`
	Answers     map[int]int `json:"answers" validate:"required"`
	DurationSec int         `json:"duration_sec" validate:"gte=0"`
}

func (s SubmitAttemptRequest) Validate() error {
	return GetValidator().Struct(s)
}

type AttemptResponse struct {
	ID          string      `json:"id"`
	QuizID      string      `json:"quiz_id"`
	QuizTitle   string      `json:"quiz_title"`
	Company     string      `json:"company"`
	Role        string      `json:"role"`
	UserID      string      `json:"user_id"`
	Answers     map[int]int `json:"answers"`
	Score       int         `json:"score"`
	Total       int         `json:"total"`
	Accuracy    float64     `json:"accuracy"`
	DurationSec int         `json:"duration_sec"`
	Status      string      `json:"status"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

type SubmitAttemptResponse struct {
	Attempt  AttemptResponse `json:"attempt"`
	XPGained int             `json:"xp_gained"`
}

type AttemptReviewQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Chosen       *int     `json:"chosen"`
	Correct      bool     `json:"correct"`
}

type AttemptReviewResponse struct {
	Attempt   AttemptResponse         `json:"attempt"`
	Questions []AttemptReviewQuestion `json:"questions"`
}
