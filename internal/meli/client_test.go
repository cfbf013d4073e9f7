package meli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, 0)
}

func TestGetItem_DecodesAndSendsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/MLA1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		w.Write([]byte(`{"id":"MLA1","title":"Taladro Bosch","category_id":"MLA1055","price":1500.5,
			"shipping":{"free_shipping":true,"logistic_type":"fulfillment"},
			"attributes":[{"id":"BRAND","value_name":"Bosch"},{"id":"MODEL","value_name":null}]}`))
	})

	it, err := c.GetItem(context.Background(), "tok", "MLA1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if it.Title != "Taladro Bosch" || it.Price != 1500.5 {
		t.Fatalf("unexpected item %+v", it)
	}
	if it.SoldQuantity != 0 {
		t.Fatalf("missing sold_quantity should default to 0")
	}
	if it.Attribute("BRAND") != "Bosch" || it.Attribute("MODEL") != "" {
		t.Fatalf("unexpected attributes %+v", it.Attributes)
	}
	if it.Shipping.FulfillmentMode() != "full" {
		t.Fatalf("expected full mode, got %q", it.Shipping.FulfillmentMode())
	}
}

func TestGetItem_NonSuccessReturnsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"forbidden"}`))
	})

	_, err := c.GetItem(context.Background(), "", "MLA1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiErr.StatusCode)
	}
}

func TestSearch_BuildsCategoryQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sites/MLA/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("category") != "MLA1055" || q.Get("q") != "bosch gsb" || q.Get("sort") != SortSoldQuantityDesc || q.Get("limit") != "30" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results":[{"id":"MLA2","sold_quantity":9},{"id":"MLA3"}]}`))
	})

	items, err := c.Search(context.Background(), "", SearchQuery{CategoryID: "MLA1055", Query: "bosch gsb", Sort: SortSoldQuantityDesc, Limit: 30})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(items) != 2 || items[0].SoldQuantity != 9 {
		t.Fatalf("unexpected results %+v", items)
	}
}

func TestGetQuestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "ANSWERED" || r.URL.Query().Get("item_id") != "MLA9" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"questions":[{"id":1,"item_id":"MLA9","text":"Tiene garantía?","date_created":"2024-03-01T10:00:00.000-03:00","answer":{"text":"Si, 1 año"}}]}`))
	})

	qs, err := c.GetQuestions(context.Background(), "", "MLA9", QuestionQuery{Status: "ANSWERED", Limit: 20})
	if err != nil {
		t.Fatalf("GetQuestions failed: %v", err)
	}
	if len(qs) != 1 || qs[0].Answer == nil || qs[0].Answer.Text != "Si, 1 año" {
		t.Fatalf("unexpected questions %+v", qs)
	}
}

func TestGetDescription_StripsHTML(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"<p>Potente   taladro</p><ul><li>700W</li><li>Percutor</li></ul>","plain_text":""}`))
	})

	text, err := c.GetDescription(context.Background(), "", "MLA1")
	if err != nil {
		t.Fatalf("GetDescription failed: %v", err)
	}
	if text != "Potente taladro\n700W\nPercutor" {
		t.Fatalf("unexpected description %q", text)
	}
}

func TestListSellerItems_Pages(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "0" {
			ids := make([]string, 50)
			for i := range ids {
				ids[i] = `"MLA` + strings.Repeat("1", i+1) + `"`
			}
			w.Write([]byte(`{"results":[` + strings.Join(ids, ",") + `],"paging":{"total":52}}`))
			return
		}
		w.Write([]byte(`{"results":["MLAX","MLAY"],"paging":{"total":52}}`))
	})

	ids, err := c.ListSellerItems(context.Background(), "", 7, 0)
	if err != nil {
		t.Fatalf("ListSellerItems failed: %v", err)
	}
	if len(ids) != 52 || calls != 2 {
		t.Fatalf("expected 52 ids over 2 calls, got %d ids over %d calls", len(ids), calls)
	}
}

func TestSiteID(t *testing.T) {
	if SiteID("mlb1234") != "MLB" {
		t.Fatalf("unexpected site id")
	}
	if SiteID("") != "" {
		t.Fatalf("expected empty site id")
	}
}

func TestRateLimiter_HonorsContext(t *testing.T) {
	rl := NewTokenBucketRateLimiter(1, 0.01)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first token should be available: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	var disabled *TokenBucketRateLimiter
	if err := disabled.Wait(context.Background()); err != nil {
		t.Fatalf("nil limiter should not block: %v", err)
	}
}

func TestRateLimiter_FractionalRateAdmitsCalls(t *testing.T) {
	rl := NewTokenBucketRateLimiter(0.5, 0.5)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("a 0.5 req/s limiter should admit the first call: %v", err)
	}
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second call should wait about 2s, got %v", err)
	}

	c := NewClient("http://meli.test", time.Second, 0.5)
	if c.rateLimiter == nil || c.rateLimiter.maxTokens != 1 || c.rateLimiter.refillRate != 0.5 {
		t.Fatalf("unexpected limiter %+v", c.rateLimiter)
	}
}
