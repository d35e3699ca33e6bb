// Package client talks to the post generation backend: the platform
// catalog, the default product, and the generation endpoint itself. The
// backend is a black box; this package only shuttles JSON.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GintasS/social-media-post-generator/internal/generation"
	"github.com/GintasS/social-media-post-generator/internal/models"
)

// BackendClient is a client for the generation backend API.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates a backend client rooted at baseURL.
func NewBackendClient(baseURL string, httpClient *http.Client) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// platformDetails mirrors the catalog's per-platform constraint object.
type platformDetails struct {
	Name         string `json:"name"`
	MaxLength    int    `json:"maxLength"`
	HashtagLimit int    `json:"hashtagLimit"`
}

// platformsResponse mirrors GET /api/v1/platforms/.
type platformsResponse struct {
	Platforms []string                   `json:"platforms"`
	Details   map[string]platformDetails `json:"details"`
}

// GetPlatforms fetches the platform catalog. Delivery order follows the
// backend's platform list; identifiers missing a details entry fall back to
// a capitalized identifier as the display label.
func (c *BackendClient) GetPlatforms(ctx context.Context) ([]models.Platform, error) {
	var resp platformsResponse
	if err := c.getJSON(ctx, "/api/v1/platforms/", &resp); err != nil {
		return nil, fmt.Errorf("fetch platforms: %w", err)
	}

	platforms := make([]models.Platform, 0, len(resp.Platforms))
	for _, id := range resp.Platforms {
		p := models.Platform{ID: id, DisplayLabel: capitalize(id)}
		if d, ok := resp.Details[id]; ok {
			if d.Name != "" {
				p.DisplayLabel = d.Name
			}
			p.MaxLength = d.MaxLength
			p.HashtagLimit = d.HashtagLimit
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// GetDefaultProduct fetches the draft the generator form is seeded with.
func (c *BackendClient) GetDefaultProduct(ctx context.Context) (models.ProductDraft, error) {
	var draft models.ProductDraft
	if err := c.getJSON(ctx, "/api/v1/products/default-product", &draft); err != nil {
		return models.ProductDraft{}, fmt.Errorf("fetch default product: %w", err)
	}
	return draft, nil
}

// generateRequest mirrors POST /api/v1/posts/.
type generateRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	Category        string          `json:"category,omitempty"`
	GenerateOptions generateOptions `json:"generate_options"`
	OpenAISettings  openAISettings  `json:"openai_settings"`
}

type generateOptions struct {
	NumberOfPosts int      `json:"number_of_posts"`
	Platforms     []string `json:"platforms"`
}

type openAISettings struct {
	ModelName   string  `json:"model_name"`
	Temperature float64 `json:"temperature"`
	WebSearch   bool    `json:"web_search"`
}

type generateResponse struct {
	Posts []struct {
		Platform string `json:"platform"`
		Content  string `json:"content"`
	} `json:"posts"`
	GeneratedAt string `json:"generated_at"`
	Count       int    `json:"count"`
	IsError     bool   `json:"isError"`
}

// Generate performs one generation call and classifies the settlement.
// Every failure to obtain a decodable 2xx response is a transport failure;
// a decodable response with the error flag set is a remote error.
func (c *BackendClient) Generate(
	ctx context.Context,
	draft models.ProductDraft,
	settings models.ModelSettings,
	options models.GenerationOptions,
) generation.Outcome {
	reqBody := generateRequest{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		GenerateOptions: generateOptions{
			NumberOfPosts: options.Count,
			Platforms:     options.Platforms,
		},
		OpenAISettings: openAISettings{
			ModelName:   settings.Model,
			Temperature: settings.Temperature,
			WebSearch:   settings.WebSearchEnabled,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return generation.TransportFailure(fmt.Errorf("marshal generate request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/posts/", bytes.NewReader(body))
	if err != nil {
		return generation.TransportFailure(fmt.Errorf("create generate request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return generation.TransportFailure(fmt.Errorf("execute generate request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return generation.TransportFailure(fmt.Errorf("generate request: unexpected status code %d", resp.StatusCode))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return generation.TransportFailure(fmt.Errorf("decode generate response: %w", err))
	}

	if decoded.IsError {
		return generation.RemoteError()
	}
	if len(decoded.Posts) == 0 {
		return generation.Empty()
	}

	posts := make([]models.GeneratedPost, len(decoded.Posts))
	for i, p := range decoded.Posts {
		posts[i] = models.GeneratedPost{Platform: p.Platform, Content: p.Content}
	}
	return generation.Success(posts)
}

func (c *BackendClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
