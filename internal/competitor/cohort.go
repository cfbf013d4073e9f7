package competitor

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

const (
	searchLimit         = 30
	cohortSize          = 10
	questionSampleSize  = 5
	questionsPerListing = 20
	titleQueryWords     = 3
	minTitleWordLength  = 4
)

// BuildQuery derives the competitor search query for a target listing:
// brand and model, then brand alone, then the first long words of the title.
func BuildQuery(t TargetListing) string {
	brand := strings.TrimSpace(t.Brand)
	model := strings.TrimSpace(t.Model)
	switch {
	case brand != "" && model != "":
		return brand + " " + model
	case brand != "":
		return brand
	}

	words := make([]string, 0, titleQueryWords)
	for _, w := range strings.Fields(t.Title) {
		if utf8.RuneCountInString(w) < minTitleWordLength {
			continue
		}
		words = append(words, w)
		if len(words) == titleQueryWords {
			break
		}
	}
	return strings.Join(words, " ")
}

type searchCohort struct {
	// members are ordered by sold quantity, descending.
	members []meli.Item
	// self is the target as it appears in the search results, if it does.
	self *meli.Item
}

// buildCohort searches the target's category and keeps the best sellers.
// A failed search degrades to an empty cohort.
func (s *Service) buildCohort(ctx context.Context, token string, t TargetListing) searchCohort {
	results, err := s.meli.Search(ctx, token, meli.SearchQuery{
		SiteID:     meli.SiteID(t.CategoryID),
		CategoryID: t.CategoryID,
		Query:      BuildQuery(t),
		Sort:       meli.SortSoldQuantityDesc,
		Limit:      searchLimit,
	})
	if err != nil {
		zap.L().Warn("competitor search failed", zap.String("item_id", t.ID), zap.Error(err))
		return searchCohort{}
	}
	return selectCohort(results, t.ID)
}

func selectCohort(results []meli.Item, targetID string) searchCohort {
	var c searchCohort
	members := make([]meli.Item, 0, len(results))
	for i := range results {
		if results[i].ID == targetID {
			if c.self == nil {
				self := results[i]
				c.self = &self
			}
			continue
		}
		members = append(members, results[i])
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].SoldQuantity > members[j].SoldQuantity
	})
	if len(members) > cohortSize {
		members = members[:cohortSize]
	}
	c.members = members
	return c
}
