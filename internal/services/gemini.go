package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateJSON(ctx context.Context, systemPrompt, userContent string, temperature float32) (string, error)
	GenerateText(ctx context.Context, systemPrompt, userContent string, temperature float32, maxOutputTokens int32) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateJSON implements GeminiService. The response is requested in strict
// JSON mode; callers still must not trust the output shape.
func (g *geminiService) GenerateJSON(ctx context.Context, systemPrompt, userContent string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	return g.generate(ctx, userContent, config)
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, systemPrompt, userContent string, temperature float32, maxOutputTokens int32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxOutputTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	return g.generate(ctx, userContent, config)
}

func (g *geminiService) generate(ctx context.Context, userContent string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userContent), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
