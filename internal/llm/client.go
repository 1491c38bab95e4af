package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"
)

// Analyzer is the remote-model surface the HTTP handlers depend on.
// Tests substitute a stub; production uses *Client.
type Analyzer interface {
	AnalyzeCRM(ctx context.Context, content string) (map[string]interface{}, error)
	AnalyzeReferral(ctx context.Context, content string) (map[string]interface{}, error)
	Chat(ctx context.Context, systemPrompt string, history []Message, detailed bool) (string, error)
}

// Message is one conversational turn for the academy chat.
type Message struct {
	Role    string
	Content string
}

// Client wraps the OpenAI API with the fixed analysis prompts.
// Constructed once at startup and passed into every handler.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// AnalyzeCRM sends the extracted call-center text through the CRM prompt
// and returns the parsed JSON reply.
func (c *Client) AnalyzeCRM(ctx context.Context, content string) (map[string]interface{}, error) {
	prompt := buildCRMPrompt(content)
	return c.callJSON(ctx, prompt, "CRM analyst")
}

// AnalyzeReferral sends referral spreadsheet text through the referral
// prompt. Content is capped at 15000 characters.
func (c *Client) AnalyzeReferral(ctx context.Context, content string) (map[string]interface{}, error) {
	prompt := buildReferralPrompt(content)
	return c.callJSON(ctx, prompt, "workflow analyst specializing in Persian CRM data")
}

// callJSON performs a single completion demanding JSON-only output, strips
// any markdown fencing, and parses the reply. A parse failure becomes a
// typed *AnalysisError; no retry is attempted.
func (c *Client) callJSON(ctx context.Context, prompt, systemRole string) (map[string]interface{}, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a %s. Return ONLY valid JSON with no markdown or explanation.", systemRole),
			},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   8000,
	})
	if err != nil {
		return nil, &AnalysisError{Message: err.Error(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &AnalysisError{Message: "پاسخ خالی از هوش مصنوعی"}
	}

	raw := resp.Choices[0].Message.Content
	log.Printf("دریافت پاسخ - طول: %d کاراکتر", len(raw))

	return ParseReply(raw)
}

// Chat answers an academy conversation with the catalog-aware system
// prompt. History carries the last turns, oldest first.
func (c *Client) Chat(ctx context.Context, systemPrompt string, history []Message, detailed bool) (string, error) {
	temperature := float32(0.5)
	maxTokens := 500
	if detailed {
		temperature = 0.8
		maxTokens = 1000
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleAssistant
		if m.Role == "user" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
