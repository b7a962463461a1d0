package dto

type ExplainAnswerRequest struct {
	Question string   `json:"question" validate:"required,not_blank"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct" validate:"required"`
	Chosen   string   `json:"chosen"`
}

func (e ExplainAnswerRequest) Validate() error {
	return GetValidator().Struct(e)
}

type ExplainAnswerResponse struct {
	Explanation string `json:"explanation"`
}

type SummarizeRequest struct {
	Text string `json:"text" validate:"required,not_blank,max=20000"`
}

func (s SummarizeRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}
