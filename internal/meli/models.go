package meli

import (
	"strings"
	"time"
)

// Item is the subset of a MercadoLibre item (or search result) used by the
// app. Missing fields decode to zero values.
type Item struct {
	ID                 string        `json:"id"`
	SiteID             string        `json:"site_id"`
	Title              string        `json:"title"`
	CategoryID         string        `json:"category_id"`
	Price              float64       `json:"price"`
	CurrencyID         string        `json:"currency_id"`
	SoldQuantity       int           `json:"sold_quantity"`
	AvailableQuantity  int           `json:"available_quantity"`
	Thumbnail          string        `json:"thumbnail"`
	Permalink          string        `json:"permalink"`
	Condition          string        `json:"condition"`
	ListingTypeID      string        `json:"listing_type_id"`
	Status             string        `json:"status"`
	Shipping           Shipping      `json:"shipping"`
	Installments       *Installments `json:"installments"`
	AcceptsMercadoPago bool          `json:"accepts_mercadopago"`
	Warranty           *string       `json:"warranty"`
	SellerID           int64         `json:"seller_id"`
	Seller             *Seller       `json:"seller"`
	Attributes         []Attribute   `json:"attributes"`
	Pictures           []Picture     `json:"pictures"`
}

type Shipping struct {
	FreeShipping bool     `json:"free_shipping"`
	Mode         string   `json:"mode"`
	LogisticType string   `json:"logistic_type"`
	StorePickUp  bool     `json:"store_pick_up"`
	Tags         []string `json:"tags"`
}

type Installments struct {
	Quantity   int     `json:"quantity"`
	Amount     float64 `json:"amount"`
	Rate       float64 `json:"rate"`
	CurrencyID string  `json:"currency_id"`
}

type Seller struct {
	ID               int64             `json:"id"`
	SellerReputation *SellerReputation `json:"seller_reputation"`
}

type SellerReputation struct {
	LevelID           *string `json:"level_id"`
	PowerSellerStatus *string `json:"power_seller_status"`
}

type Picture struct {
	ID        string `json:"id"`
	SecureURL string `json:"secure_url"`
}

type Attribute struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ValueName string `json:"value_name"`
}

// Attribute returns the value of the attribute with the given id, or "".
func (it Item) Attribute(id string) string {
	for _, a := range it.Attributes {
		if a.ID == id {
			return strings.TrimSpace(a.ValueName)
		}
	}
	return ""
}

// FulfillmentMode normalizes MELI logistics into "full", "flex" or "".
func (s Shipping) FulfillmentMode() string {
	switch s.LogisticType {
	case "fulfillment":
		return "full"
	case "self_service":
		return "flex"
	}
	for _, tag := range s.Tags {
		switch tag {
		case "fulfillment":
			return "full"
		case "self_service_in":
			return "flex"
		}
	}
	return ""
}

type Question struct {
	ID          int64     `json:"id"`
	ItemID      string    `json:"item_id"`
	Text        string    `json:"text"`
	Status      string    `json:"status"`
	DateCreated time.Time `json:"date_created"`
	Answer      *Answer   `json:"answer"`
}

type Answer struct {
	Text        string    `json:"text"`
	Status      string    `json:"status"`
	DateCreated time.Time `json:"date_created"`
}

type Trend struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// SiteID derives the marketplace site from a category id ("MLA1055" -> "MLA").
func SiteID(categoryID string) string {
	if len(categoryID) < 3 {
		return ""
	}
	return strings.ToUpper(categoryID[:3])
}
