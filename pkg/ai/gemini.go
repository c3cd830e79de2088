package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return newGemini(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newGemini(ctx context.Context, cc *genai.ClientConfig, model string) (Model, error) {
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &gemini{client: client, model: model}, nil
}

func (g *gemini) Name() string { return "gemini:" + g.model }

func (g *gemini) Generate(ctx context.Context, r Request) (string, error) {
	contents := make([]*genai.Content, 0, len(r.Messages))
	for _, m := range r.Messages {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		parts := []*genai.Part{genai.NewPartFromText(m.Text)}
		if len(m.Image) > 0 {
			parts = append(parts, genai.NewPartFromBytes(m.Image, m.MIME))
		}
		contents = append(contents, genai.NewContentFromParts(parts, role))
	}

	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.2)}
	if r.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(r.System, genai.RoleUser)
	}
	if r.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}
