package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adripedrejon/examcorpus/extract"
)

// OpenAI defaults.
const (
	DefaultOpenAIEmbeddingModel = string(openai.SmallEmbedding3)
	DefaultOpenAIChatModel      = openai.GPT3Dot5Turbo
)

// OpenAIConfig configures the OpenAI adapter.
type OpenAIConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a compatible gateway.
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
}

// OpenAI embeds text and guesses answers through the OpenAI API.
type OpenAI struct {
	client         *openai.Client
	embeddingModel string
	chatModel      string
}

// NewOpenAI creates the adapter, filling unset models with defaults.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultOpenAIEmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultOpenAIChatModel
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &OpenAI{
		client:         openai.NewClientWithConfig(clientCfg),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
	}
}

// Embed returns the embedding of text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(o.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: create embeddings: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("openai: empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}

// Guess asks the chat model for the letter of the correct option.
func (o *OpenAI) Guess(ctx context.Context, question string, opts extract.Options) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: GuessPrompt(question, opts)},
		},
		Temperature: 0.2,
		MaxTokens:   5,
	})
	if err != nil {
		return "", fmt.Errorf("openai: guess answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	return strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}

var (
	_ Embedder = (*OpenAI)(nil)
	_ Guesser  = (*OpenAI)(nil)
)
