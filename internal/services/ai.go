package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

// ReminderDrafter writes reminder text for a tenant.
type ReminderDrafter interface {
	DraftReminder(ctx context.Context, brief ReminderBrief) (string, error)
}

// ReminderBrief is everything the drafter knows about the tenancy.
type ReminderBrief struct {
	TenantName   string
	PropertyName string
	Unit         string
	RentAmount   decimal.Decimal
	RentDueDate  time.Time
	RentStatus   string
	ReminderType string
	Note         string
}

// AIService drafts reminder messages with an OpenAI chat model.
type AIService struct {
	client *openai.Client
	model  string
}

// NewAIService creates a client for apiKey. baseURL overrides the API
// endpoint when non-empty (compatible gateways, tests).
func NewAIService(apiKey, baseURL string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4o,
	}
}

// DraftReminder asks the model for a short, polite reminder message.
func (s *AIService) DraftReminder(ctx context.Context, brief ReminderBrief) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You write short reminder messages from a landlord to a tenant.

Tenant: %s
Property: %s, unit %s
Monthly rent: %s
Rent due date: %s
Rent status: %s
Reminder type: %s
Landlord note: %s

Write a polite reminder of at most three sentences. Return only the message text.`,
		brief.TenantName,
		brief.PropertyName,
		brief.Unit,
		brief.RentAmount.StringFixed(2),
		brief.RentDueDate.Format("2006-01-02"),
		brief.RentStatus,
		brief.ReminderType,
		brief.Note,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return message, nil
}
