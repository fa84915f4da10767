package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const openAIMaxTokens = 600

// OpenAIGenerator produces copy through the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey string) (*OpenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	system := fmt.Sprintf(
		"You are a marketing copywriter. Write %s %s in a %s tone.",
		lengthWord(req.Length), typeWord(req.Type), toneWord(req.Tone),
	)
	user := prompt
	if len(req.Keywords) > 0 {
		user = fmt.Sprintf("%s\n\nWork in these keywords: %s.", prompt, strings.Join(req.Keywords, ", "))
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   openAIMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func lengthWord(length string) string {
	switch strings.ToLower(strings.TrimSpace(length)) {
	case lengthShort:
		return "a short"
	case lengthLong:
		return "a long-form"
	default:
		return "a medium-length"
	}
}

func typeWord(contentType string) string {
	if t := normalizeType(contentType); t != "" {
		return strings.ReplaceAll(t, "-", " ")
	}
	return "piece of marketing copy"
}

func toneWord(tone string) string {
	if t := strings.ToLower(strings.TrimSpace(tone)); t != "" {
		return t
	}
	return "professional"
}
