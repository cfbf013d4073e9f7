package optimization

import (
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/meli-optimizer/internal/ai"
	"github.com/wichananm65/meli-optimizer/internal/keyword"
)

// Suggestion is one AI rewrite of a listing. Every optimize call appends a
// new one, so the rows of a listing form its re-analysis history.
type Suggestion struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               int             `json:"userId"`
	ListingID            string          `json:"listingId"`
	Provider             ai.Provider     `json:"provider"`
	OriginalTitle        string          `json:"originalTitle"`
	SuggestedTitle       string          `json:"suggestedTitle"`
	OriginalDescription  string          `json:"originalDescription"`
	SuggestedDescription string          `json:"suggestedDescription"`
	Keywords             []keyword.Score `json:"keywords"`
	Score                int             `json:"score"`
	CreatedAt            time.Time       `json:"createdAt"`
}
