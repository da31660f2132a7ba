// Package ai talks to an OpenAI-compatible chat completions endpoint for
// article summarization and classification.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/zhu327/bookmark/internal/config"
)

// Client summarizes and classifies fetched articles.
type Client interface {
	// Summarize produces a short summary of the article text.
	Summarize(ctx context.Context, content string) (string, error)
	// Classify picks a category for the article. The model chooses from
	// categories when one fits, but may invent a new name.
	Classify(ctx context.Context, title, summary string, categories []string) (string, error)
}

// New creates a Client from the LLM config.
func New(cfg *config.LLMConfig) (Client, error) {
	if cfg == nil || cfg.APIURL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM not configured")
	}
	model := cfg.Model
	if model == "" {
		return nil, fmt.Errorf("LLM model not configured")
	}
	return &chatClient{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		model:  model,
		// Reasoning backends can take minutes on long articles.
		client: &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

const summarizeSystemPrompt = `You are a professional article summarizer. Write one refined summary of the article you are given: fluent, focused on the core points, and strictly under 150 words. Respond with the summary text only.`

const classifySystemPrompt = `You are a classification assistant. Given an article title and summary, assign the article to the single most fitting category. Choose strictly from the provided list of existing categories; only if none fits, invent one new, concise category name (for example "Cloud Native" or "Product & Design"). Your answer must be the category name itself and nothing else: no extra words, explanations, or punctuation such as "Category:" or "##".`

type chatClient struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *chatClient) Summarize(ctx context.Context, content string) (string, error) {
	text, err := c.call(ctx, summarizeSystemPrompt, content, 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *chatClient) Classify(ctx context.Context, title, summary string, categories []string) (string, error) {
	text, err := c.call(ctx, classifySystemPrompt, classifyUserPrompt(title, summary, categories), 0.1)
	if err != nil {
		return "", err
	}
	category := sanitizeCategory(text)
	if category == "" {
		return "", fmt.Errorf("empty category in response %q", text)
	}
	return category, nil
}

func classifyUserPrompt(title, summary string, categories []string) string {
	var sb strings.Builder
	sb.WriteString("Existing categories:\n")
	for _, cat := range categories {
		sb.WriteString("- ")
		sb.WriteString(cat)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nArticle title:\n%s\n\nArticle summary:\n%s\n\nChoose or create the single best category name for this article:", title, summary)
	return sb.String()
}

// sanitizeCategory strips markdown decoration the model sometimes wraps
// around the bare name.
var categoryNoise = regexp.MustCompile(`^[#*"\s]+|[#*"\s]+$`)

func sanitizeCategory(s string) string {
	return categoryNoise.ReplaceAllString(s, "")
}

func (c *chatClient) call(ctx context.Context, system, user string, temperature float64) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("LLM API %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding LLM response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty LLM response")
	}
	return cr.Choices[0].Message.Content, nil
}
