package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// LLMClient is the interface both generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and drafts practice questions for a subject.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-5"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// DraftQuestions asks the model for count multiple-choice practice questions
// on the given subject at the given study level. Drafted questions are meant
// to land in the pool flagged for review, not to be served blindly.
func (g *Generator) DraftQuestions(ctx context.Context, subject, studyLevel string, count int) (*DraftBatch, error) {
	systemPrompt := SystemPrompt()
	userPrompt := BuildUserPrompt(subject, studyLevel, count)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("draft questions: %w", err)
	}

	batch, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse draft response: %w", err)
	}

	return batch, nil
}

// ── Anthropic API Client ────────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(0.8),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── Mock Client (local development) ─────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      buildMockJSON(),
		PromptTokens: 600,
		OutputTokens: 1200,
	}, nil
}

func buildMockJSON() string {
	questions := "["
	for i := 0; i < 3; i++ {
		if i > 0 {
			questions += ","
		}
		questions += fmt.Sprintf(`{"stem":"[Mock] Practice question %d: which option is correct?","options":["First option","Second option","Third option","Fourth option"],"answer":%d,"explanation":"[Mock] Option %d is correct because of the governing rule.","difficulty":"medium","tags":["mock"],"estimated_time":60}`,
			i+1, i%4, i%4+1)
	}
	questions += "]"
	return fmt.Sprintf(`{"questions":%s}`, questions)
}
