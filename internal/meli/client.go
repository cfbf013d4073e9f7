package meli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// APIError is returned for any non-2xx MELI response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meli: request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client calls the MercadoLibre REST API. It never retries; callers decide
// how to degrade.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *TokenBucketRateLimiter
}

// NewClient creates a client. requestsPerSecond <= 0 disables rate limiting.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: NewTokenBucketRateLimiter(max(1, requestsPerSecond), requestsPerSecond),
	}
}

type SearchQuery struct {
	SiteID     string
	CategoryID string
	Query      string
	Sort       string
	Limit      int
}

type QuestionQuery struct {
	Status string
	Limit  int
}

const SortSoldQuantityDesc = "sold_quantity_desc"

func (c *Client) GetItem(ctx context.Context, token, id string) (Item, error) {
	var it Item
	err := c.get(ctx, token, "/items/"+url.PathEscape(id), nil, &it)
	return it, err
}

// Search runs a category-scoped site search.
func (c *Client) Search(ctx context.Context, token string, q SearchQuery) ([]Item, error) {
	site := q.SiteID
	if site == "" {
		site = SiteID(q.CategoryID)
	}
	params := url.Values{}
	if q.CategoryID != "" {
		params.Set("category", q.CategoryID)
	}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var resp struct {
		Results []Item `json:"results"`
	}
	if err := c.get(ctx, token, "/sites/"+url.PathEscape(site)+"/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) GetQuestions(ctx context.Context, token, itemID string, q QuestionQuery) ([]Question, error) {
	params := url.Values{}
	params.Set("item_id", itemID)
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var resp struct {
		Questions []Question `json:"questions"`
	}
	if err := c.get(ctx, token, "/questions/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// GetDescription returns the plain-text description of an item. When MELI
// only has the HTML variant the markup is stripped.
func (c *Client) GetDescription(ctx context.Context, token, itemID string) (string, error) {
	var resp struct {
		Text      string `json:"text"`
		PlainText string `json:"plain_text"`
	}
	if err := c.get(ctx, token, "/items/"+url.PathEscape(itemID)+"/description", nil, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.PlainText) != "" {
		return strings.TrimSpace(resp.PlainText), nil
	}
	return htmlToText(resp.Text)
}

// ListSellerItems pages through the seller's item ids, up to limit.
func (c *Client) ListSellerItems(ctx context.Context, token string, sellerID int64, limit int) ([]string, error) {
	const pageSize = 50
	ids := make([]string, 0)
	for offset := 0; limit <= 0 || len(ids) < limit; offset += pageSize {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(offset))

		var resp struct {
			Results []string `json:"results"`
			Paging  struct {
				Total int `json:"total"`
			} `json:"paging"`
		}
		path := "/users/" + strconv.FormatInt(sellerID, 10) + "/items/search"
		if err := c.get(ctx, token, path, params, &resp); err != nil {
			return nil, err
		}
		ids = append(ids, resp.Results...)
		if len(resp.Results) < pageSize || offset+pageSize >= resp.Paging.Total {
			break
		}
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (c *Client) GetTrends(ctx context.Context, token, siteID, categoryID string) ([]Trend, error) {
	path := "/trends/" + url.PathEscape(siteID)
	if categoryID != "" {
		path += "/" + url.PathEscape(categoryID)
	}
	var trends []Trend
	if err := c.get(ctx, token, path, nil, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

func (c *Client) get(ctx context.Context, token, path string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return eris.Wrap(err, "meli: create request")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return eris.Wrapf(err, "meli: GET %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "meli: read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "meli: decode %s", path)
	}
	return nil
}

func htmlToText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", eris.Wrap(err, "meli: parse description html")
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n"), nil
}
