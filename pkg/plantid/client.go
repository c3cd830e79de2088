// Package plantid classifies crop photos with the Plant.id health
// assessment API.
package plantid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kisan/pkg/ai"
	"kisan/pkg/apperr"
)

type Client struct {
	endpoint string
	key      string
	httpc    *http.Client
}

func New(endpoint, key string) *Client {
	return &Client{endpoint: endpoint, key: key, httpc: &http.Client{Timeout: 20 * time.Second}}
}

type suggestion struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Details     struct {
		Description string `json:"description"`
		Treatment   struct {
			Biological []string `json:"biological"`
			Chemical   []string `json:"chemical"`
			Prevention []string `json:"prevention"`
		} `json:"treatment"`
	} `json:"details"`
}

type assessment struct {
	Result struct {
		IsHealthy struct {
			Binary      bool    `json:"binary"`
			Probability float64 `json:"probability"`
		} `json:"is_healthy"`
		Disease struct {
			Suggestions []suggestion `json:"suggestions"`
		} `json:"disease"`
	} `json:"result"`
}

func (c *Client) ClassifyPestImage(ctx context.Context, image []byte, mime string) (*ai.PestDiagnosis, error) {
	body, err := json.Marshal(map[string]any{
		"images":         []string{"data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)},
		"similar_images": false,
	})
	if err != nil {
		return nil, apperr.Internal("encode plant.id request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?details=description,treatment", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internal("build plant.id request", err)
	}
	req.Header.Set("Api-Key", c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperr.Unavailable("plant health service unavailable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperr.Unavailable("plant health service unavailable", fmt.Errorf("status %d", resp.StatusCode))
	}

	var a assessment
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, apperr.BadFormat("plant health service returned an unreadable answer", err)
	}
	return toDiagnosis(a), nil
}

func toDiagnosis(a assessment) *ai.PestDiagnosis {
	if a.Result.IsHealthy.Binary || len(a.Result.Disease.Suggestions) == 0 {
		return &ai.PestDiagnosis{Healthy: true, Confidence: a.Result.IsHealthy.Probability}
	}
	top := a.Result.Disease.Suggestions[0]
	d := &ai.PestDiagnosis{
		Name:        top.Name,
		Confidence:  top.Probability,
		Description: top.Details.Description,
	}
	d.Treatment = append(d.Treatment, top.Details.Treatment.Biological...)
	d.Treatment = append(d.Treatment, top.Details.Treatment.Chemical...)
	d.Treatment = append(d.Treatment, top.Details.Treatment.Prevention...)
	return d
}
