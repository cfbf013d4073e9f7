package competitor

import (
	"time"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

// TargetListing is the seller's own item being benchmarked.
type TargetListing struct {
	ID                  string
	Title               string
	CategoryID          string
	Brand               string
	Model               string
	Price               float64
	SoldQuantity        int
	FreeShipping        bool
	FulfillmentMode     string
	InstallmentQuantity int
	InstallmentRate     float64
}

// OffersInterestFree reports whether the target sells in installments at 0%.
func (t TargetListing) OffersInterestFree() bool {
	return t.InstallmentQuantity > 0 && t.InstallmentRate == 0
}

func targetFromItem(item meli.Item) TargetListing {
	t := TargetListing{
		ID:              item.ID,
		Title:           item.Title,
		CategoryID:      item.CategoryID,
		Brand:           item.Attribute("BRAND"),
		Model:           item.Attribute("MODEL"),
		Price:           item.Price,
		SoldQuantity:    item.SoldQuantity,
		FreeShipping:    item.Shipping.FreeShipping,
		FulfillmentMode: item.Shipping.FulfillmentMode(),
	}
	if item.Installments != nil {
		t.InstallmentQuantity = item.Installments.Quantity
		t.InstallmentRate = item.Installments.Rate
	}
	return t
}

// CompetitorListing is a snapshot of a competing item at fetch time.
type CompetitorListing struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Price              float64          `json:"price"`
	SoldQuantity       int              `json:"sold_quantity"`
	AvailableQuantity  int              `json:"available_quantity"`
	Thumbnail          string           `json:"thumbnail"`
	Permalink          string           `json:"permalink"`
	Condition          string           `json:"condition"`
	ListingTypeID      string           `json:"listing_type_id"`
	Shipping           ShippingInfo     `json:"shipping"`
	Installments       *Installments    `json:"installments"`
	AcceptsMercadoPago bool             `json:"accepts_mercadopago"`
	Warranty           *string          `json:"warranty"`
	SellerReputation   SellerReputation `json:"seller_reputation"`
	Attributes         []meli.Attribute `json:"attributes"`
}

type ShippingInfo struct {
	FreeShipping bool `json:"free_shipping"`
	// Mode is "full", "flex" or nil.
	Mode        *string `json:"mode"`
	StorePickup bool    `json:"store_pickup"`
}

type Installments struct {
	Quantity   int     `json:"quantity"`
	Amount     float64 `json:"amount"`
	Rate       float64 `json:"rate"`
	CurrencyID string  `json:"currency_id"`
}

type SellerReputation struct {
	LevelID           *string `json:"level_id"`
	PowerSellerStatus *string `json:"power_seller_status"`
}

// competitorFromItem merges an item detail with its search snapshot. Search
// results carry installments and seller reputation that item detail may omit.
func competitorFromItem(detail, snapshot meli.Item) CompetitorListing {
	c := CompetitorListing{
		ID:                 detail.ID,
		Title:              detail.Title,
		Price:              detail.Price,
		SoldQuantity:       detail.SoldQuantity,
		AvailableQuantity:  detail.AvailableQuantity,
		Thumbnail:          detail.Thumbnail,
		Permalink:          detail.Permalink,
		Condition:          detail.Condition,
		ListingTypeID:      detail.ListingTypeID,
		AcceptsMercadoPago: detail.AcceptsMercadoPago,
		Warranty:           detail.Warranty,
		Attributes:         detail.Attributes,
		Shipping: ShippingInfo{
			FreeShipping: detail.Shipping.FreeShipping,
			StorePickup:  detail.Shipping.StorePickUp,
		},
	}
	if c.ID == "" {
		c.ID = snapshot.ID
	}
	if c.SoldQuantity == 0 {
		c.SoldQuantity = snapshot.SoldQuantity
	}
	if c.Attributes == nil {
		c.Attributes = []meli.Attribute{}
	}
	if mode := detail.Shipping.FulfillmentMode(); mode != "" {
		c.Shipping.Mode = &mode
	}

	inst := detail.Installments
	if inst == nil {
		inst = snapshot.Installments
	}
	if inst != nil {
		c.Installments = &Installments{
			Quantity:   inst.Quantity,
			Amount:     inst.Amount,
			Rate:       inst.Rate,
			CurrencyID: inst.CurrencyID,
		}
	}

	seller := detail.Seller
	if seller == nil || seller.SellerReputation == nil {
		seller = snapshot.Seller
	}
	if seller != nil && seller.SellerReputation != nil {
		c.SellerReputation = SellerReputation{
			LevelID:           seller.SellerReputation.LevelID,
			PowerSellerStatus: seller.SellerReputation.PowerSellerStatus,
		}
	}
	return c
}

// BuyerQuestion is an answered question asked on a cohort member.
type BuyerQuestion struct {
	Text        string    `json:"question"`
	Answer      *string   `json:"answer"`
	DateCreated time.Time `json:"date_created"`
	ItemID      string    `json:"item_id"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Recommendation struct {
	Recommendation string   `json:"recommendation"`
	Reason         string   `json:"reason"`
	Priority       Priority `json:"priority"`
}
