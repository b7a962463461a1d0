package dto

import "time"

type QuestionResponse struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Source   string   `json:"source,omitempty"`
}

type FlashcardResponse struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
	Topic string `json:"topic,omitempty"`
}

type QuizQuestion struct {
	Text         string   `json:"text" validate:"not_blank"`
	Options      []string `json:"options" validate:"min=2,dive,not_blank"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0"`
}

type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Role          string `json:"role"`
	Type          string `json:"type"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// QuizResponse is a quiz without its answer key, for running a mock round.
type QuizResponse struct {
	QuizSummary
	Questions []QuizQuestionView `json:"questions"`
}

type QuizQuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type SubmitQuestionRequest struct {
	Type     string   `json:"type" validate:"required,category"`
	Question string   `json:"question" validate:"required,not_blank"`
	Options  []string `json:"options" validate:"omitempty,dive,not_blank"`
	Answer   string   `json:"answer" validate:"required,not_blank"`
	Source   string   `json:"source,omitempty" validate:"max=200"`
}

func (s SubmitQuestionRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SubmitQuizRequest struct {
	Title       string         `json:"title" validate:"required,not_blank"`
	Company     string         `json:"company" validate:"required,not_blank"`
	Role        string         `json:"role"`
	Type        string         `json:"type" validate:"required,category"`
	Description string         `json:"description"`
	Questions   []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

func (s SubmitQuizRequest) Validate() error {
	return GetValidator().Struct(s)
}

type QuestionSubmissionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Question    string    `json:"question"`
	Options     []string  `json:"options"`
	Answer      string    `json:"answer"`
	Source      string    `json:"source,omitempty"`
	SubmittedBy string    `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuizSubmissionResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Company     string         `json:"company"`
	Role        string         `json:"role"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Questions   []QuizQuestion `json:"questions"`
	SubmittedBy string         `json:"submitted_by"`
	CreatedAt   time.Time      `json:"created_at"`
}
