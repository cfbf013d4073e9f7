package competitor

import (
	"context"
	"fmt"
	"sync"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

type ctxKey struct{}

type fakeMeli struct {
	items     map[string]meli.Item
	failItems map[string]bool
	search    []meli.Item
	searchErr error
	questions map[string][]meli.Question

	mu           sync.Mutex
	searches     []meli.SearchQuery
	sawCtxValues int
}

func (f *fakeMeli) note(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ctx.Value(ctxKey{}) != nil {
		f.sawCtxValues++
	}
}

func (f *fakeMeli) GetItem(ctx context.Context, _ string, id string) (meli.Item, error) {
	f.note(ctx)
	if f.failItems[id] {
		return meli.Item{}, &meli.APIError{StatusCode: 500, Body: "boom"}
	}
	it, ok := f.items[id]
	if !ok {
		return meli.Item{}, &meli.APIError{StatusCode: 404, Body: "not found"}
	}
	return it, nil
}

func (f *fakeMeli) Search(ctx context.Context, _ string, q meli.SearchQuery) ([]meli.Item, error) {
	f.note(ctx)
	f.mu.Lock()
	f.searches = append(f.searches, q)
	f.mu.Unlock()
	return f.search, f.searchErr
}

func (f *fakeMeli) GetQuestions(ctx context.Context, _ string, itemID string, _ meli.QuestionQuery) ([]meli.Question, error) {
	f.note(ctx)
	qs, ok := f.questions[itemID]
	if !ok {
		return nil, fmt.Errorf("questions unavailable for %s", itemID)
	}
	return qs, nil
}

func strPtr(s string) *string { return &s }

// newMarket builds a target MLA1 plus n competitors MLA101.. whose sold
// quantity decreases with the index. The search results include the target.
func newMarket(n int) *fakeMeli {
	f := &fakeMeli{
		items: map[string]meli.Item{
			"MLA1": {
				ID: "MLA1", Title: "Taladro Percutor Inalámbrico 18v", CategoryID: "MLA1055", Price: 1500, SoldQuantity: 3,
				Attributes: []meli.Attribute{{ID: "BRAND", ValueName: "Bosch"}, {ID: "MODEL", ValueName: "GSB 180"}},
			},
		},
		failItems: map[string]bool{},
		questions: map[string][]meli.Question{},
	}
	f.search = append(f.search, meli.Item{ID: "MLA1", SoldQuantity: 3})
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("MLA%d", 101+i)
		sold := 1000 - i*10
		f.search = append(f.search, meli.Item{
			ID: id, SoldQuantity: sold,
			Installments: &meli.Installments{Quantity: 12, Rate: 0},
		})
		f.items[id] = meli.Item{
			ID: id, Title: "Taladro " + id, Price: 1000 + float64(i), SoldQuantity: sold,
			ListingTypeID: "gold_special",
			Shipping:      meli.Shipping{FreeShipping: true, LogisticType: "fulfillment"},
		}
	}
	return f
}
