package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ismaelfarah/studenttrack/internal/config"
)

// AIService suggests checklist tasks for a project using a chat
// completion model.
type AIService struct {
	client *openai.Client
	model  string
}

// NewAIService builds the AI helper from configuration. Returns nil when
// no API key is configured; callers treat a nil service as feature-off.
func NewAIService(cfg *config.OpenAIConfig) *AIService {
	if cfg.APIKey == "" {
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// SuggestTasks asks the model for a short actionable task list based on
// the project name and description.
func (s *AIService) SuggestTasks(ctx context.Context, name, description string) ([]string, error) {
	if name == "" {
		return nil, errors.New("project name is required")
	}

	prompt := fmt.Sprintf(
		"Suggest 5 short, actionable development tasks for a student project.\n"+
			"Project: %s\nDescription: %s\n"+
			"Reply with one task per line, no numbering and no extra text.",
		name, description)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("task suggestion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	return parseTaskLines(resp.Choices[0].Message.Content), nil
}

// parseTaskLines strips list markers the model tends to add despite the
// prompt asking for plain lines.
func parseTaskLines(content string) []string {
	var tasks []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = strings.TrimLeft(line, "0123456789.) ")
		if line != "" {
			tasks = append(tasks, line)
		}
	}
	return tasks
}
