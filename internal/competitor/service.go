package competitor

import (
	"context"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

// MeliClient is the part of the MELI API the competitor analysis needs.
type MeliClient interface {
	GetItem(ctx context.Context, token, id string) (meli.Item, error)
	Search(ctx context.Context, token string, q meli.SearchQuery) ([]meli.Item, error)
	GetQuestions(ctx context.Context, token, itemID string, q meli.QuestionQuery) ([]meli.Question, error)
}

type Product struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	SoldQuantity int     `json:"sold_quantity"`
}

type Analysis struct {
	Commercial        *CommercialPatterns `json:"commercial"`
	Payment           PaymentAnalysis     `json:"payment"`
	Shipping          ShippingAnalysis    `json:"shipping"`
	FrequentQuestions QuestionAnalysis    `json:"frequentQuestions"`
	TotalCompetitors  int                 `json:"totalCompetitors"`
}

// Report is the full benchmark of one listing. Analysis is nil when no
// competitor could be loaded.
type Report struct {
	Product     Product             `json:"product"`
	Competitors []CompetitorListing `json:"competitors"`
	Analysis    *Analysis           `json:"analysis"`
}

type Service struct {
	meli     MeliClient
	analyzer *QuestionAnalyzer
}

func NewService(client MeliClient, analyzer *QuestionAnalyzer) *Service {
	if analyzer == nil {
		analyzer = NewQuestionAnalyzer(DefaultTaxonomy, DefaultAdvice)
	}
	return &Service{meli: client, analyzer: analyzer}
}

// Analyze benchmarks productID against its best selling competitors. Only a
// failure to load productID itself is returned as an error; every other
// upstream failure shrinks the data set instead.
func (s *Service) Analyze(ctx context.Context, token, productID string) (Report, error) {
	item, err := s.meli.GetItem(ctx, token, productID)
	if err != nil {
		return Report{}, err
	}
	target := targetFromItem(item)

	report := Report{
		Product: Product{
			ID:           item.ID,
			Title:        item.Title,
			Price:        item.Price,
			SoldQuantity: item.SoldQuantity,
		},
		Competitors: []CompetitorListing{},
	}

	found := s.buildCohort(ctx, token, target)
	if found.self != nil && target.InstallmentQuantity == 0 && found.self.Installments != nil {
		target.InstallmentQuantity = found.self.Installments.Quantity
		target.InstallmentRate = found.self.Installments.Rate
	}
	if len(found.members) == 0 {
		return report, nil
	}

	competitors := s.fetchDetails(ctx, token, found.members)
	if len(competitors) == 0 {
		return report, nil
	}
	report.Competitors = competitors

	questions := s.sampleQuestions(ctx, token, competitors)
	report.Analysis = &Analysis{
		Commercial:        AnalyzeCommercial(competitors),
		Payment:           RecommendPayment(competitors, target),
		Shipping:          RecommendShipping(competitors, target),
		FrequentQuestions: s.analyzer.Analyze(questions),
		TotalCompetitors:  len(competitors),
	}
	return report, nil
}
