package optimization

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/wichananm65/meli-optimizer/internal/ai"
	"github.com/wichananm65/meli-optimizer/internal/keyword"
)

func TestPostgresRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := uuid.MustParse("6f1c1f5e-3c55-4a8e-9a63-1f0d9f1b2c3d")
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s := Suggestion{
		ID: id, UserID: 1, ListingID: "MLA9", Provider: ai.ProviderOpenAI,
		OriginalTitle: "a", SuggestedTitle: "b",
		Keywords: []keyword.Score{{Keyword: "taladro", Relevance: 100, InTitle: true}},
		Score:    100, CreatedAt: at,
	}

	mock.ExpectExec("INSERT INTO optimization_suggestions").
		WithArgs(id, 1, "MLA9", "openai", "a", "b", "", "", sqlmock.AnyArg(), 100, at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if _, err := repo.Create(s); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "user_id", "listing_id", "provider", "original_title", "suggested_title",
		"original_description", "suggested_description", "keywords", "score", "created_at"}).
		AddRow(id.String(), 1, "MLA9", "openai", "a", "b", nil, "desc",
			`[{"keyword":"taladro","relevance":100,"inTitle":true}]`, 100, at)
	mock.ExpectQuery("FROM optimization_suggestions").WithArgs(1, "MLA9").WillReturnRows(rows)

	got, err := repo.ListByListing(1, "MLA9")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != id || got[0].Provider != ai.ProviderOpenAI || got[0].SuggestedDescription != "desc" {
		t.Fatalf("unexpected history %+v", got)
	}
	if len(got[0].Keywords) != 1 || !got[0].Keywords[0].InTitle {
		t.Fatalf("unexpected keywords %+v", got[0].Keywords)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
