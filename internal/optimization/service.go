package optimization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/ai"
	"github.com/wichananm65/meli-optimizer/internal/keyword"
	"github.com/wichananm65/meli-optimizer/internal/meli"
	"github.com/wichananm65/meli-optimizer/internal/product"
)

var ErrInvalidCompletion = errors.New("AI completion is not a valid suggestion")

const maxPromptKeywords = 10

type Listings interface {
	Get(userID int, id string) (product.Listing, error)
}

type Trends interface {
	Trending(ctx context.Context, token, categoryID string) ([]meli.Trend, error)
}

type Service struct {
	repo     Repository
	listings Listings
	trends   Trends
	ai       ai.Client
	now      func() time.Time
}

func NewService(repo Repository, listings Listings, trends Trends, client ai.Client) *Service {
	return &Service{repo: repo, listings: listings, trends: trends, ai: client, now: time.Now}
}

type completion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    []struct {
		Keyword   string `json:"keyword"`
		Relevance *int   `json:"relevance"`
	} `json:"keywords"`
}

// Optimize asks the AI provider for a better title and description of a
// listing and stores the result as a new history entry. token may be empty,
// in which case no trending keywords are offered to the model.
func (s *Service) Optimize(ctx context.Context, userID int, listingID, token string) (Suggestion, error) {
	if s.ai.Provider() == ai.ProviderNone {
		return Suggestion{}, ai.ErrNoProvider
	}

	listing, err := s.listings.Get(userID, listingID)
	if err != nil {
		return Suggestion{}, err
	}

	var trending []string
	if token != "" && listing.CategoryID != "" {
		trends, err := s.trends.Trending(ctx, token, listing.CategoryID)
		if err != nil {
			zap.L().Warn("optimizing without trends", zap.String("item_id", listingID), zap.Error(err))
		}
		trending = keyword.Keywords(trends)
		if len(trending) > maxPromptKeywords {
			trending = trending[:maxPromptKeywords]
		}
	}

	raw, err := s.ai.Complete(ctx, buildPrompt(listing, trending))
	if err != nil {
		return Suggestion{}, err
	}
	c, err := parseCompletion(raw)
	if err != nil {
		return Suggestion{}, err
	}

	keywords := scoreKeywords(c, trending)
	suggestion := Suggestion{
		ID:                   uuid.New(),
		UserID:               userID,
		ListingID:            listing.ID,
		Provider:             s.ai.Provider(),
		OriginalTitle:        listing.Title,
		SuggestedTitle:       c.Title,
		OriginalDescription:  listing.Description,
		SuggestedDescription: c.Description,
		Keywords:             keywords,
		Score:                averageRelevance(keywords),
		CreatedAt:            s.now().UTC(),
	}
	return s.repo.Create(suggestion)
}

func (s *Service) History(userID int, listingID string) ([]Suggestion, error) {
	if _, err := s.listings.Get(userID, listingID); err != nil {
		return nil, err
	}
	return s.repo.ListByListing(userID, listingID)
}

func buildPrompt(l product.Listing, trending []string) ai.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", l.Title)
	fmt.Fprintf(&b, "Category: %s\n", l.CategoryID)
	if l.Brand != "" {
		fmt.Fprintf(&b, "Brand: %s\n", l.Brand)
	}
	if l.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", l.Model)
	}
	fmt.Fprintf(&b, "Description:\n%s\n", l.Description)
	if len(trending) > 0 {
		fmt.Fprintf(&b, "Trending searches: %s\n", strings.Join(trending, ", "))
	}
	return ai.Prompt{
		System: "You improve MercadoLibre listings. Answer only with a JSON object " +
			`{"title": string, "description": string, "keywords": [{"keyword": string, "relevance": 0-100}]}. ` +
			"Titles must stay under 60 characters and in the listing's language.",
		User: b.String(),
	}
}

// parseCompletion extracts the JSON object of a completion, tolerating
// surrounding prose or code fences.
func parseCompletion(raw string) (completion, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return completion{}, ErrInvalidCompletion
	}
	var c completion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &c); err != nil {
		return completion{}, fmt.Errorf("%w: %v", ErrInvalidCompletion, err)
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return completion{}, ErrInvalidCompletion
	}
	return c, nil
}

// scoreKeywords keeps the model's relevance when given and scores the rest
// against the suggested title. Without model keywords the trending ones are
// scored instead.
func scoreKeywords(c completion, trending []string) []keyword.Score {
	if len(c.Keywords) == 0 {
		return keyword.ScoreTitle(c.Title, trending)
	}

	out := make([]keyword.Score, 0, len(c.Keywords))
	for _, k := range c.Keywords {
		kw := strings.TrimSpace(k.Keyword)
		if kw == "" {
			continue
		}
		computed := keyword.ScoreTitle(c.Title, []string{kw})[0]
		if k.Relevance != nil {
			computed.Relevance = min(max(*k.Relevance, 0), 100)
		}
		out = append(out, computed)
	}
	return out
}

func averageRelevance(scores []keyword.Score) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s.Relevance
	}
	return int(math.Floor(float64(sum)/float64(len(scores)) + 0.5))
}
