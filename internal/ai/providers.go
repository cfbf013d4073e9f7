package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
)

type openAIClient struct {
	cfg  Config
	http *http.Client
}

func (c *openAIClient) Provider() Provider { return ProviderOpenAI }

func (c *openAIClient) Complete(ctx context.Context, p Prompt) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []message{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	var resp struct {
		Choices []struct {
			Message message `json:"message"`
		} `json:"choices"`
	}
	if err := postJSON(ctx, c.http, c.cfg.BaseURL+"/chat/completions", headers, body, &resp); err != nil {
		return "", eris.Wrap(err, "openai: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return nonEmpty(resp.Choices[0].Message.Content)
}

type anthropicClient struct {
	cfg  Config
	http *http.Client
}

func (c *anthropicClient) Provider() Provider { return ProviderAnthropic }

func (c *anthropicClient) Complete(ctx context.Context, p Prompt) (string, error) {
	body := map[string]any{
		"model":      c.cfg.Model,
		"max_tokens": 2048,
		"system":     p.System,
		"messages": []map[string]string{
			{"role": "user", "content": p.User},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": "2023-06-01",
	}

	var resp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := postJSON(ctx, c.http, c.cfg.BaseURL+"/messages", headers, body, &resp); err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return nonEmpty(sb.String())
}

type geminiClient struct {
	cfg  Config
	http *http.Client
}

func (c *geminiClient) Provider() Provider { return ProviderGemini }

func (c *geminiClient) Complete(ctx context.Context, p Prompt) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	body := map[string]any{
		"systemInstruction": content{Parts: []part{{Text: p.System}}},
		"contents":          []content{{Parts: []part{{Text: p.User}}}},
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	var resp struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
	if err := postJSON(ctx, c.http, url, headers, body, &resp); err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}
	var sb strings.Builder
	for _, pt := range resp.Candidates[0].Content.Parts {
		sb.WriteString(pt.Text)
	}
	return nonEmpty(sb.String())
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyCompletion
	}
	return s, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "failed to marshal request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return eris.Wrapf(err, "POST %s", url)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return eris.Errorf("API request failed with status %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrap(err, "failed to parse API response")
	}
	return nil
}
