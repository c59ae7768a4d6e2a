package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAIGenerator produces learning points using the OpenAI Chat API
type OpenAIGenerator struct {
	keyResolver SettingResolver
	httpClient  *http.Client
}

func NewOpenAIGenerator(keyResolver SettingResolver) *OpenAIGenerator {
	return &OpenAIGenerator{
		keyResolver: keyResolver,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (o *OpenAIGenerator) Name() string {
	return "openai"
}

func (o *OpenAIGenerator) Ready() bool {
	return o.keyResolver != nil && o.keyResolver() != ""
}

func (o *OpenAIGenerator) Generate(ctx context.Context, lineText string, opts GenerateOptions) ([]Annotation, error) {
	apiKey := ""
	if o.keyResolver != nil {
		apiKey = o.keyResolver()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	reqBody := map[string]interface{}{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "system", "content": "You are a language-learning assistant. Respond with JSON only."},
			{"role": "user", "content": buildPrompt(lineText, opts.Context)},
		},
		"temperature": 0.3,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", openAIChatURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty OpenAI response")
	}

	return parsePoints(chatResp.Choices[0].Message.Content)
}
