// Package fetch retrieves article content as markdown. Two strategies:
// Cloudflare browser rendering for WeChat official-account pages (which
// plain readers cannot load), and the Jina Reader for everything else.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/zhu327/bookmark/internal/config"
)

// Fetcher loads one page and normalizes it to markdown text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

const wechatHost = "mp.weixin.qq.com"

// New builds the strategy dispatcher. Without Cloudflare credentials,
// WeChat links fail with an explanatory error instead of a bad fetch.
func New(cfg *config.Config) Fetcher {
	d := &dispatcher{jina: newJinaFetcher()}
	if cfg.CloudflareEnabled() {
		d.cloudflare = newCloudflareFetcher(cfg.Cloudflare.AccountID, cfg.Cloudflare.APIToken)
	}
	return d
}

type dispatcher struct {
	jina       Fetcher
	cloudflare Fetcher
}

func (d *dispatcher) Fetch(ctx context.Context, url string) (string, error) {
	if strings.Contains(url, wechatHost) {
		if d.cloudflare == nil {
			return "", fmt.Errorf("wechat article %s requires Cloudflare credentials (CLOUDFLARE_ACCOUNT_ID, CLOUDFLARE_API_TOKEN)", url)
		}
		return d.cloudflare.Fetch(ctx, url)
	}
	return d.jina.Fetch(ctx, url)
}

// --- Jina Reader ---

const jinaContentMarker = "Markdown Content:\n"

type jinaFetcher struct {
	baseURL string
	client  *http.Client
}

func newJinaFetcher() *jinaFetcher {
	return &jinaFetcher{
		baseURL: "https://r.jina.ai/",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (f *jinaFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", "bookmark/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("jina reader error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("jina reader %d: %s", resp.StatusCode, string(b))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading jina response: %w", err)
	}

	text := string(body)
	if _, content, found := strings.Cut(text, jinaContentMarker); found {
		return strings.TrimSpace(content), nil
	}
	// Reader sometimes omits its framing; the whole body is the content.
	return strings.TrimSpace(text), nil
}

// --- Cloudflare browser rendering ---

type cloudflareFetcher struct {
	baseURL   string
	accountID string
	apiToken  string
	client    *http.Client
}

func newCloudflareFetcher(accountID, apiToken string) *cloudflareFetcher {
	return &cloudflareFetcher{
		baseURL:   "https://api.cloudflare.com/client/v4",
		accountID: accountID,
		apiToken:  apiToken,
		// Rendering a full page can take a while.
		client: &http.Client{Timeout: 10 * time.Minute},
	}
}

type renderRequest struct {
	URL string `json:"url"`
}

type renderResponse struct {
	Success bool            `json:"success"`
	Result  string          `json:"result"`
	Errors  json.RawMessage `json:"errors"`
}

func (f *cloudflareFetcher) Fetch(ctx context.Context, url string) (string, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/browser-rendering/content", f.baseURL, f.accountID)
	body, _ := json.Marshal(renderRequest{URL: url})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudflare rendering error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("cloudflare rendering %d: %s", resp.StatusCode, string(b))
	}

	var rr renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("decoding cloudflare response: %w", err)
	}
	if !rr.Success {
		return "", fmt.Errorf("cloudflare rendering failed: %s", string(rr.Errors))
	}

	markdown, err := htmltomarkdown.ConvertString(rr.Result)
	if err != nil {
		return "", fmt.Errorf("converting rendered HTML: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
