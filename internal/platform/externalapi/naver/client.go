package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"coin_backend/internal/feature/coins/domain/entity"
	"coin_backend/internal/feature/coins/usecase"
	"coin_backend/internal/platform/externalapi/naver/dto"
)

// Client は Naver ニュース検索 API のクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.NewsClient = (*Client)(nil)

func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.Display <= 0 {
		cfg.Display = defaultDisplay
	}
	return &Client{cfg: cfg, client: client}
}

var tagReplacer = strings.NewReplacer("<b>", "", "</b>", "")

// cleanText は検索語の強調タグと HTML エンティティを取り除きます。
func cleanText(s string) string {
	return html.UnescapeString(tagReplacer.Replace(s))
}

// Search は term で最新順にニュースを検索します。pubDate は加工せずに返します。
func (c *Client) Search(ctx context.Context, term string) ([]entity.NewsSearchResult, error) {
	q := url.Values{}
	q.Set("query", term)
	q.Set("display", strconv.Itoa(c.cfg.Display))
	q.Set("sort", "date")

	u := fmt.Sprintf("%s/v1/search/news.json?%s", c.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", c.cfg.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.cfg.ClientSecret)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var body dto.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.ErrorMessage != "" {
			return nil, fmt.Errorf("naver http %d: %s", res.StatusCode, body.ErrorMessage)
		}
		return nil, fmt.Errorf("naver http %d", res.StatusCode)
	}

	var body dto.NewsSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("naver decode: %w", err)
	}

	out := make([]entity.NewsSearchResult, 0, len(body.Items))
	for _, it := range body.Items {
		out = append(out, entity.NewsSearchResult{
			Title:       cleanText(it.Title),
			Link:        it.Link,
			Description: cleanText(it.Description),
			PubDate:     it.PubDate,
		})
	}
	return out, nil
}
