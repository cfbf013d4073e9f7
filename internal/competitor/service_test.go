package competitor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

func TestAnalyze_DropsFailedDetails(t *testing.T) {
	f := newMarket(10)
	f.failItems["MLA102"] = true
	f.failItems["MLA105"] = true
	f.failItems["MLA109"] = true

	report, err := NewService(f, nil).Analyze(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if len(report.Competitors) != 7 || report.Analysis.TotalCompetitors != 7 {
		t.Fatalf("expected 7 competitors, got %d", len(report.Competitors))
	}
	for i, c := range report.Competitors {
		if f.failItems[c.ID] {
			t.Fatalf("failed competitor %s kept", c.ID)
		}
		if i > 0 && report.Competitors[i-1].SoldQuantity < c.SoldQuantity {
			t.Fatalf("cohort order lost at %d", i)
		}
	}
	if got := report.Analysis.Commercial.Shipping.FreeShipping; got.Count != 7 || got.Percentage != 100 {
		t.Fatalf("percentages must use the shrunk cohort, got %+v", got)
	}
}

func TestAnalyze_ExcludesTargetAndBuildsQuery(t *testing.T) {
	f := newMarket(12)

	report, err := NewService(f, nil).Analyze(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if len(report.Competitors) != cohortSize {
		t.Fatalf("expected %d competitors, got %d", cohortSize, len(report.Competitors))
	}
	for _, c := range report.Competitors {
		if c.ID == "MLA1" {
			t.Fatalf("target returned as its own competitor")
		}
	}

	q := f.searches[0]
	if q.Query != "Bosch GSB 180" || q.CategoryID != "MLA1055" || q.SiteID != "MLA" ||
		q.Sort != meli.SortSoldQuantityDesc || q.Limit != searchLimit {
		t.Fatalf("unexpected search %+v", q)
	}

	c := report.Competitors[0]
	if c.Installments == nil || c.Installments.Quantity != 12 {
		t.Fatalf("installments should be carried from the search snapshot, got %+v", c.Installments)
	}
	if c.Shipping.Mode == nil || *c.Shipping.Mode != "full" {
		t.Fatalf("expected full fulfillment mode")
	}
	if report.Product.ID != "MLA1" || report.Product.SoldQuantity != 3 {
		t.Fatalf("unexpected product %+v", report.Product)
	}
}

func TestAnalyze_EmptyCohort(t *testing.T) {
	cases := map[string]*fakeMeli{
		"search fails": func() *fakeMeli {
			f := newMarket(3)
			f.searchErr = &meli.APIError{StatusCode: 503}
			return f
		}(),
		"only the target": newMarket(0),
		"every detail fails": func() *fakeMeli {
			f := newMarket(2)
			f.failItems["MLA101"] = true
			f.failItems["MLA102"] = true
			return f
		}(),
	}
	for name, f := range cases {
		report, err := NewService(f, nil).Analyze(context.Background(), "tok", "MLA1")
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		body, _ := json.Marshal(report)
		if !bytes.Contains(body, []byte(`"competitors":[]`)) || !bytes.Contains(body, []byte(`"analysis":null`)) {
			t.Fatalf("%s: unexpected body %s", name, body)
		}
	}
}

func TestAnalyze_TargetFailureIsFatal(t *testing.T) {
	f := newMarket(3)
	_, err := NewService(f, nil).Analyze(context.Background(), "tok", "MLA404")
	var apiErr *meli.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Fatalf("expected upstream 404, got %v", err)
	}
}

func TestAnalyze_SamplesQuestionsFromTopFive(t *testing.T) {
	f := newMarket(8)
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	answered := func(text string) meli.Question {
		return meli.Question{Text: text, Status: "ANSWERED", DateCreated: at, Answer: &meli.Answer{Text: "Sí"}}
	}
	f.questions["MLA101"] = []meli.Question{answered("¿Tiene garantía?"), {Text: "¿Hay stock?", Status: "UNANSWERED"}}
	f.questions["MLA102"] = []meli.Question{answered("¿Qué medidas tiene?")}
	// MLA103 has no questions entry and fails.
	f.questions["MLA104"] = []meli.Question{answered("¿La garantía es oficial?")}
	f.questions["MLA106"] = []meli.Question{answered("¿Tiene garantía de fábrica?")}

	report, err := NewService(f, nil).Analyze(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	fq := report.Analysis.FrequentQuestions
	if fq.TotalQuestions != 3 {
		t.Fatalf("expected 3 answered questions from the top five, got %d", fq.TotalQuestions)
	}
	if fq.CommonTopics[0].Topic != "garantía" || fq.CommonTopics[0].Count != 2 {
		t.Fatalf("unexpected topics %+v", fq.CommonTopics)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	f := newMarket(10)
	f.failItems["MLA104"] = true
	f.questions["MLA101"] = []meli.Question{
		{Text: "¿Tiene garantía?", Answer: &meli.Answer{Text: "Sí"}},
		{Text: "¿Medidas?", Answer: &meli.Answer{Text: "20cm"}},
	}
	f.questions["MLA102"] = []meli.Question{{Text: "¿Es original?", Answer: &meli.Answer{Text: "Sí"}}}
	svc := NewService(f, nil)

	first, err := svc.Analyze(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := svc.Analyze(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Fatalf("runs differ:\n%s\n%s", a, b)
	}
}

func TestAnalyze_PropagatesRequestContext(t *testing.T) {
	f := newMarket(4)
	f.questions["MLA101"] = nil
	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")

	if _, err := NewService(f, nil).Analyze(ctx, "tok", "MLA1"); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	// target + search + 4 details + 4 question lookups
	if f.sawCtxValues != 10 {
		t.Fatalf("expected every upstream call to see the request context, got %d", f.sawCtxValues)
	}
}

func TestAnalyze_TargetInstallmentsFromSearch(t *testing.T) {
	f := newMarket(2)
	f.search[0].Installments = &meli.Installments{Quantity: 12, Rate: 0}

	report, err := NewService(f, nil).Analyze(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if report.Analysis.Payment.Priority != PriorityLow {
		t.Fatalf("target offers 12 interest-free installments, got %+v", report.Analysis.Payment.Recommendation)
	}
}
