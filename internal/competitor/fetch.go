package competitor

import (
	"context"

	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

// fetchDetails loads full detail for every cohort member concurrently.
// Failed members are dropped; the survivors keep cohort order.
func (s *Service) fetchDetails(ctx context.Context, token string, members []meli.Item) []CompetitorListing {
	results := settleAll(ctx, members, 0, func(ctx context.Context, snapshot meli.Item) (CompetitorListing, error) {
		detail, err := s.meli.GetItem(ctx, token, snapshot.ID)
		if err != nil {
			return CompetitorListing{}, err
		}
		return competitorFromItem(detail, snapshot), nil
	})

	return successes(results, func(i int, err error) {
		zap.L().Warn("dropping competitor, detail fetch failed",
			zap.String("item_id", members[i].ID), zap.Error(err))
	})
}

// sampleQuestions collects answered questions of the first listings of the
// cohort. A listing whose questions cannot be fetched contributes none.
func (s *Service) sampleQuestions(ctx context.Context, token string, listings []CompetitorListing) []BuyerQuestion {
	if len(listings) > questionSampleSize {
		listings = listings[:questionSampleSize]
	}

	results := settleAll(ctx, listings, 0, func(ctx context.Context, l CompetitorListing) ([]BuyerQuestion, error) {
		qs, err := s.meli.GetQuestions(ctx, token, l.ID, meli.QuestionQuery{
			Status: "ANSWERED",
			Limit:  questionsPerListing,
		})
		if err != nil {
			return nil, err
		}
		return toBuyerQuestions(l.ID, qs), nil
	})

	out := make([]BuyerQuestion, 0)
	for _, batch := range successes(results, func(i int, err error) {
		zap.L().Warn("questions unavailable for competitor",
			zap.String("item_id", listings[i].ID), zap.Error(err))
	}) {
		out = append(out, batch...)
	}
	return out
}

func toBuyerQuestions(itemID string, qs []meli.Question) []BuyerQuestion {
	out := make([]BuyerQuestion, 0, len(qs))
	for _, q := range qs {
		if q.Answer == nil {
			continue
		}
		answer := q.Answer.Text
		out = append(out, BuyerQuestion{
			Text:        q.Text,
			Answer:      &answer,
			DateCreated: q.DateCreated,
			ItemID:      itemID,
		})
		if len(out) == questionsPerListing {
			break
		}
	}
	return out
}
