package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vailure/internal/domain"
)

// DefaultBaseURL is the Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// thinkingBudget is the token budget granted in thinking mode.
const thinkingBudget = 32768

const systemInstruction = "You are a world-class fashion expert and personal stylist for the luxury brand 'Vailure'. Your style is modern, minimalist, and edgy, with a monochrome color palette. Answer user queries with this persona. Be helpful, insightful, and slightly aspirational. Refer to Vailure products when relevant. Keep responses concise and stylish."

// Client talks to the Gemini generateContent API. thinkingMode=false uses
// the flash model with the googleSearch tool (web-grounded, may cite
// sources); thinkingMode=true uses the pro model with a thinking budget
// and returns no sources.
type Client struct {
	apiKey     string
	baseURL    string
	flashModel string
	proModel   string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, flashModel, proModel string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		flashModel: flashModel,
		proModel:   proModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Generate(ctx context.Context, prompt string, thinkingMode bool) (domain.AssistantReply, error) {
	if c.apiKey == "" {
		return domain.AssistantReply{}, fmt.Errorf("gemini API key not configured")
	}

	model := c.flashModel
	reqBody := generateRequest{
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
	}
	if thinkingMode {
		model = c.proModel
		reqBody.GenerationConfig = &genConfig{ThinkingConfig: &thinkingConfig{ThinkingBudget: thinkingBudget}}
	} else {
		reqBody.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AssistantReply{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return domain.AssistantReply{}, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return domain.AssistantReply{}, fmt.Errorf("gemini API error: status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return domain.AssistantReply{}, fmt.Errorf("parse response: %w", err)
	}
	if len(genResp.Candidates) == 0 {
		return domain.AssistantReply{}, fmt.Errorf("empty response: no candidates")
	}

	cand := genResp.Candidates[0]
	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}

	reply := domain.AssistantReply{Text: text.String()}
	if !thinkingMode && cand.GroundingMetadata != nil {
		reply.Sources = dedupeSources(cand.GroundingMetadata.GroundingChunks)
	}
	return reply, nil
}

// dedupeSources maps grounding chunks to citations, dropping chunks with
// no uri and collapsing duplicate uris (first occurrence wins the title;
// a missing title falls back to the uri).
func dedupeSources(chunks []groundingChunk) []domain.Source {
	var out []domain.Source
	seen := map[string]bool{}
	for _, ch := range chunks {
		if ch.Web == nil || ch.Web.URI == "" {
			continue
		}
		if seen[ch.Web.URI] {
			continue
		}
		seen[ch.Web.URI] = true
		title := ch.Web.Title
		if title == "" {
			title = ch.Web.URI
		}
		out = append(out, domain.Source{Title: title, URI: ch.Web.URI})
	}
	return out
}
