package optimization

import (
	"database/sql"
	"encoding/json"

	"github.com/wichananm65/meli-optimizer/internal/ai"
	"github.com/wichananm65/meli-optimizer/internal/keyword"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertSuggestionQuery = `
		INSERT INTO optimization_suggestions (id, user_id, listing_id, provider, original_title, suggested_title,
			original_description, suggested_description, keywords, score, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	listSuggestionsQuery = `
		SELECT id, user_id, listing_id, provider, original_title, suggested_title,
			original_description, suggested_description, keywords, score, created_at
		FROM optimization_suggestions
		WHERE user_id = $1 AND listing_id = $2
		ORDER BY created_at DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(s Suggestion) (Suggestion, error) {
	keywords, err := json.Marshal(s.Keywords)
	if err != nil {
		return Suggestion{}, err
	}
	_, err = r.db.Exec(insertSuggestionQuery,
		s.ID, s.UserID, s.ListingID, string(s.Provider), s.OriginalTitle, s.SuggestedTitle,
		s.OriginalDescription, s.SuggestedDescription, keywords, s.Score, s.CreatedAt,
	)
	if err != nil {
		return Suggestion{}, err
	}
	return s, nil
}

func (r *PostgresRepository) ListByListing(userID int, listingID string) ([]Suggestion, error) {
	rows, err := r.db.Query(listSuggestionsQuery, userID, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Suggestion, 0)
	for rows.Next() {
		var (
			s        Suggestion
			provider string
			origDesc sql.NullString
			suggDesc sql.NullString
			keywords []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.ListingID, &provider, &s.OriginalTitle, &s.SuggestedTitle,
			&origDesc, &suggDesc, &keywords, &s.Score, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Provider = aiProvider(provider)
		s.OriginalDescription = origDesc.String
		s.SuggestedDescription = suggDesc.String
		s.Keywords = []keyword.Score{}
		if len(keywords) > 0 {
			if err := json.Unmarshal(keywords, &s.Keywords); err != nil {
				return nil, err
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func aiProvider(s string) ai.Provider {
	p, err := ai.ParseProvider(s)
	if err != nil {
		return ai.Provider(s)
	}
	return p
}
