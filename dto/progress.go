package dto

import "github.com/cadetforge/arena_api/ledger"

type ProgressResponse struct {
	UserID     string           `json:"user_id"`
	XP         int              `json:"xp"`
	Level      int              `json:"level"`
	Streak     int              `json:"streak"`
	LastActive *string          `json:"lastActive"`
	Campaign   *ledger.Campaign `json:"campaign"`
	Stats      ledger.Stats     `json:"stats"`
}

type DrillAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Chosen     string `json:"chosen" validate:"required"`
}

func (d DrillAnswerRequest) Validate() error {
	return GetValidator().Struct(d)
}

type DrillAnswerResponse struct {
	Correct        bool   `json:"correct"`
	Answer         string `json:"answer"`
	XPGained       int    `json:"xp_gained"`
	Streak         int    `json:"streak"`
	DayCompleted   bool   `json:"day_completed"`
	CompletedToday int    `json:"campaign_days_done"`
}

type MockAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Chosen     string `json:"chosen"`
}

type MockResultRequest struct {
	Type    string       `json:"type" validate:"required,category"`
	Answers []MockAnswer `json:"answers" validate:"required,min=1,unique=QuestionID,dive"`
}

func (m MockResultRequest) Validate() error {
	return GetValidator().Struct(m)
}

type MockResultResponse struct {
	Right        int  `json:"right"`
	Wrong        int  `json:"wrong"`
	Accuracy     int  `json:"accuracy"`
	XPGained     int  `json:"xp_gained"`
	BonusXP      int  `json:"bonus_xp"`
	Streak       int  `json:"streak"`
	DayCompleted bool `json:"day_completed"`
}
