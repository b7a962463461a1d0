package services

import (
	stdctx "context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/shared"
)

const (
	defaultExplainModel = "gpt-4o-mini"
	explainTemperature  = 0.3
)

var errExplainNotConfigured = errors.New("completion API key is not set")

type chatCompleter interface {
	CreateChatCompletion(ctx stdctx.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ExplainService asks a chat completion model to explain answers and
// summarize study material.
type ExplainService struct {
	context.DefaultService

	client  chatCompleter
	model   string
	apiKey  string
	baseURL string
}

const EXPLAIN_SVC = "explain_svc"

func (svc ExplainService) Id() string {
	return EXPLAIN_SVC
}

func (svc *ExplainService) Configure(ctx *context.Context) error {
	svc.apiKey = os.Getenv("OPENAI_API_KEY")
	svc.baseURL = os.Getenv("OPENAI_BASE_URL")
	svc.model = os.Getenv("OPENAI_MODEL")
	if svc.model == "" {
		svc.model = defaultExplainModel
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ExplainService) Start() error {
	if svc.apiKey == "" {
		log.Warn("OPENAI_API_KEY not set, AI routes will be unavailable")
		return nil
	}

	cfg := openai.DefaultConfig(svc.apiKey)
	if svc.baseURL != "" {
		cfg.BaseURL = svc.baseURL
	}
	svc.client = openai.NewClientWithConfig(cfg)

	log.WithField("model", svc.model).Info("Explain service started")
	return nil
}

func NewExplainService(client chatCompleter, model string) *ExplainService {
	if model == "" {
		model = defaultExplainModel
	}
	return &ExplainService{client: client, model: model}
}

func (svc *ExplainService) ExplainAnswer(ctx stdctx.Context, req dto.ExplainAnswerRequest) (*dto.ExplainAnswerResponse, error) {
	text, err := svc.complete(ctx, explainPrompt(req))
	if err != nil {
		return nil, err
	}
	return &dto.ExplainAnswerResponse{Explanation: text}, nil
}

func (svc *ExplainService) Summarize(ctx stdctx.Context, req dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	text, err := svc.complete(ctx, summarizePrompt(req.Text))
	if err != nil {
		return nil, err
	}
	return &dto.SummarizeResponse{Summary: text}, nil
}

func (svc *ExplainService) complete(ctx stdctx.Context, prompt string) (string, error) {
	if svc.client == nil {
		return "", shared.NewServiceUnavailableError(errExplainNotConfigured, "AI is not available")
	}

	resp, err := svc.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: svc.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: explainTemperature,
	})
	if err != nil {
		log.WithError(err).Error("Chat completion failed")
		return "", shared.NewServiceUnavailableError(err, "AI failed")
	}
	if len(resp.Choices) == 0 {
		return "", shared.NewServiceUnavailableError(errors.New("no choices returned"), "AI failed")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func explainPrompt(req dto.ExplainAnswerRequest) string {
	var b strings.Builder
	b.WriteString("You are an interview preparation coach. Explain briefly why the correct answer is right")
	if req.Chosen != "" && req.Chosen != req.Correct {
		b.WriteString(" and why the chosen answer is wrong")
	}
	b.WriteString(".\n\nQuestion:\n")
	b.WriteString(req.Question)
	if len(req.Options) > 0 {
		b.WriteString("\n\nOptions:\n")
		for i, opt := range req.Options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
		}
	}
	fmt.Fprintf(&b, "\nCorrect answer: %s\n", req.Correct)
	if req.Chosen != "" {
		fmt.Fprintf(&b, "Chosen answer: %s\n", req.Chosen)
	}
	return b.String()
}

func summarizePrompt(text string) string {
	return `Summarize the following interview preparation material.

Return:
- 5 bullet summary
- Key concepts
- 3 interview-style questions

Content:
` + text
}
