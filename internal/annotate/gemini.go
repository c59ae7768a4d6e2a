package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// SettingResolver returns the current value of a runtime setting. Engines
// resolve keys and models through these on every call, so settings changes
// take effect without a restart.
type SettingResolver func() string

// GeminiGenerator produces learning points using the Google Gemini API
type GeminiGenerator struct {
	keyResolver   SettingResolver
	modelResolver SettingResolver
	httpClient    *http.Client
}

func NewGeminiGenerator(keyResolver, modelResolver SettingResolver) *GeminiGenerator {
	return &GeminiGenerator{
		keyResolver:   keyResolver,
		modelResolver: modelResolver,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (g *GeminiGenerator) currentModel() string {
	if g.modelResolver != nil {
		if m := g.modelResolver(); m != "" {
			return m
		}
	}
	return "gemini-2.0-flash"
}

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

func (g *GeminiGenerator) Ready() bool {
	return g.keyResolver != nil && g.keyResolver() != ""
}

func (g *GeminiGenerator) Generate(ctx context.Context, lineText string, opts GenerateOptions) ([]Annotation, error) {
	apiKey := ""
	if g.keyResolver != nil {
		apiKey = g.keyResolver()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	model := g.currentModel()
	log.Printf("[gemini] using model: %s, analyzing line (%d chars)", model, len(lineText))

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": buildPrompt(lineText, opts.Context)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.3,
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("Gemini API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		log.Printf("[gemini] empty response body: %s", string(body))
		if geminiResp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("Gemini blocked: %s", geminiResp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("empty Gemini response")
	}

	if fr := geminiResp.Candidates[0].FinishReason; fr != "" && fr != "STOP" {
		log.Printf("[gemini] WARNING: finishReason=%s", fr)
	}

	return parsePoints(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// buildPrompt asks for 2-3 distinct learning points as a strict JSON array.
func buildPrompt(lineText, context string) string {
	if context == "" {
		context = "General conversation"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Analyze the following English subtitle line from a TV show: %q.\n", lineText))
	b.WriteString(fmt.Sprintf("Context: %s.\n\n", context))
	b.WriteString("Provide 2-3 short, distinct learning points in JSON format.\n")
	b.WriteString("The output must be a JSON array of objects with keys: ")
	b.WriteString(`"type" (one of: 'vocabulary', 'grammar', 'culture'), `)
	b.WriteString(`"anchor" (the exact substring of the line the point refers to) and `)
	b.WriteString(`"content" (the explanation).` + "\n")
	b.WriteString("Keep explanations concise (under 50 words).")
	return b.String()
}

// parsePoints decodes the model's JSON array, tolerating prose around the
// array and partial objects. Unknown categories and missing anchors are
// normalized rather than rejected.
func parsePoints(text string) ([]Annotation, error) {
	var raw []struct {
		Type    string `json:"type"`
		Anchor  string `json:"anchor"`
		Content string `json:"content"`
	}

	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("parse learning points: %w (raw: %s)", err, text)
		}
		if err2 := json.Unmarshal([]byte(text[start:end+1]), &raw); err2 != nil {
			return nil, fmt.Errorf("parse learning points: %w (raw: %s)", err, text)
		}
	}

	var points []Annotation
	for _, r := range raw {
		if strings.TrimSpace(r.Content) == "" {
			continue
		}
		points = append(points, Normalize(Annotation{
			Category: Category(r.Type),
			Anchor:   r.Anchor,
			Content:  r.Content,
		}))
	}
	return points, nil
}
