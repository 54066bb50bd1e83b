package llm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const geminiUserID = "resume"

// GeminiClient runs each completion as a one-shot ADK agent over a Gemini
// model. Sessions live in memory and are deleted after every call.
type GeminiClient struct {
	model    model.LLM
	sessions session.Service
	config   Config
}

func NewGeminiClient(ctx context.Context, cfg Config, apiKey string) (*GeminiClient, error) {
	cfg = cfg.Normalize()
	m, err := gemini.NewModel(ctx, cfg.Model, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini model")
	}
	return &GeminiClient{
		model:    m,
		sessions: session.InMemoryService(),
		config:   cfg,
	}, nil
}

func (c *GeminiClient) Name() string { return ProviderGemini + ":" + c.config.Model }

func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	const appName = "resume"

	a, err := llmagent.New(llmagent.Config{
		Name:        "resume_assistant",
		Model:       c.model,
		Description: "Resume tailoring assistant",
		Instruction: req.System,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create agent")
	}

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          a,
		SessionService: c.sessions,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create runner")
	}

	created, err := c.sessions.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    geminiUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create agent session")
	}
	defer func() {
		_ = c.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   appName,
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
	}()

	msg := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Prompt}},
	}

	var output string
	err = withRetry(ctx, c.config.Retry, ProviderGemini, isRetryableMessage, func() error {
		var sb strings.Builder
		for event, err := range r.Run(ctx, created.Session.UserID(), created.Session.ID(), msg, agent.RunConfig{}) {
			if err != nil {
				return err
			}
			if event == nil || !event.IsFinalResponse() || event.Content == nil {
				continue
			}
			for _, part := range event.Content.Parts {
				sb.WriteString(part.Text)
			}
		}
		if sb.Len() == 0 {
			return errors.New("empty agent response")
		}
		output = sb.String()
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini agent run failed")
	}
	return output, nil
}
