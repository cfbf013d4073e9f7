package product

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/meli-optimizer/internal/meli"
)

// Listing is one of the seller's MELI items as last synced into the local
// store. It maps to the `listings` table, keyed by (user_id, id).
type Listing struct {
	ID                  string           `json:"id"`
	UserID              int              `json:"userId"`
	Title               string           `json:"title"`
	CategoryID          string           `json:"categoryId"`
	Price               decimal.Decimal  `json:"price"`
	CurrencyID          string           `json:"currencyId"`
	SoldQuantity        int              `json:"soldQuantity"`
	AvailableQuantity   int              `json:"availableQuantity"`
	Thumbnail           string           `json:"thumbnail,omitempty"`
	Permalink           string           `json:"permalink,omitempty"`
	Status              string           `json:"status"`
	Brand               string           `json:"brand,omitempty"`
	Model               string           `json:"model,omitempty"`
	FreeShipping        bool             `json:"freeShipping"`
	LogisticType        string           `json:"logisticType,omitempty"`
	InstallmentQuantity int              `json:"installmentQuantity"`
	InstallmentRate     float64          `json:"installmentRate"`
	Description         string           `json:"description,omitempty"`
	Pictures            []string         `json:"pictures"`
	Attributes          []meli.Attribute `json:"attributes"`
	SyncedAt            time.Time        `json:"syncedAt"`
}

// FromItem builds the stored form of a MELI item.
func FromItem(userID int, item meli.Item, description string, syncedAt time.Time) Listing {
	l := Listing{
		ID:                item.ID,
		UserID:            userID,
		Title:             item.Title,
		CategoryID:        item.CategoryID,
		Price:             decimal.NewFromFloat(item.Price),
		CurrencyID:        item.CurrencyID,
		SoldQuantity:      item.SoldQuantity,
		AvailableQuantity: item.AvailableQuantity,
		Thumbnail:         item.Thumbnail,
		Permalink:         item.Permalink,
		Status:            item.Status,
		Brand:             item.Attribute("BRAND"),
		Model:             item.Attribute("MODEL"),
		FreeShipping:      item.Shipping.FreeShipping,
		LogisticType:      item.Shipping.LogisticType,
		Description:       description,
		Pictures:          make([]string, 0, len(item.Pictures)),
		Attributes:        item.Attributes,
		SyncedAt:          syncedAt,
	}
	if item.Installments != nil {
		l.InstallmentQuantity = item.Installments.Quantity
		l.InstallmentRate = item.Installments.Rate
	}
	for _, p := range item.Pictures {
		l.Pictures = append(l.Pictures, p.SecureURL)
	}
	if l.Attributes == nil {
		l.Attributes = []meli.Attribute{}
	}
	return l
}
