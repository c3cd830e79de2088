// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// openAI talks to any OpenAI-compatible /v1/chat/completions endpoint.
type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

func NewOpenAI(endpoint, key, model string) Model {
	return &openAI{endpoint: endpoint, key: key, model: model, httpc: &http.Client{Timeout: 25 * time.Second}}
}

func (c *openAI) Name() string { return "openai:" + c.model }

type chatPart struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	ImageURL map[string]string `json:"image_url,omitempty"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

func (c *openAI) Generate(ctx context.Context, r Request) (string, error) {
	msgs := make([]chatMsg, 0, len(r.Messages)+1)
	if r.System != "" {
		msgs = append(msgs, chatMsg{Role: "system", Content: r.System})
	}
	for _, m := range r.Messages {
		if len(m.Image) == 0 {
			msgs = append(msgs, chatMsg{Role: m.Role, Content: m.Text})
			continue
		}
		dataURL := "data:" + m.MIME + ";base64," + base64.StdEncoding.EncodeToString(m.Image)
		msgs = append(msgs, chatMsg{Role: m.Role, Content: []chatPart{
			{Type: "text", Text: m.Text},
			{Type: "image_url", ImageURL: map[string]string{"url": dataURL}},
		}})
	}
	reqBody := map[string]any{
		"model":       c.model,
		"messages":    msgs,
		"temperature": 0.2,
	}
	if r.JSON {
		reqBody["response_format"] = map[string]string{"type": "json_object"}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions: status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("chat completions: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return out.Choices[0].Message.Content, nil
}
