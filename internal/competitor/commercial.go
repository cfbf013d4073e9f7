package competitor

import "math"

type ShippingPatterns struct {
	FreeShipping Statistic `json:"freeShipping"`
	Full         Statistic `json:"full"`
	Flex         Statistic `json:"flex"`
	StorePickup  Statistic `json:"storePickup"`
}

type FinancingPatterns struct {
	WithInstallments Statistic `json:"withInstallments"`
	// InterestFree is relative to the listings with installments.
	InterestFree        Statistic `json:"interestFree"`
	AverageInstallments int       `json:"averageInstallments"`
}

type ListingTypePattern struct {
	Type string `json:"type"`
	Statistic
}

type ReputationPatterns struct {
	Platinum Statistic `json:"platinum"`
}

type CommercialPatterns struct {
	Shipping    ShippingPatterns   `json:"shipping"`
	Financing   FinancingPatterns  `json:"financing"`
	ListingType ListingTypePattern `json:"listingType"`
	Warranty    Statistic          `json:"warranty"`
	Reputation  ReputationPatterns `json:"reputation"`
}

// AnalyzeCommercial summarizes how the cohort sells. It returns nil for an
// empty cohort.
func AnalyzeCommercial(cohort []CompetitorListing) *CommercialPatterns {
	n := len(cohort)
	if n == 0 {
		return nil
	}

	withInstallments := installmentQuantities(cohort)
	interestFree := countWhere(cohort, func(c CompetitorListing) bool {
		return c.Installments != nil && c.Installments.Rate == 0
	})
	listingType, listingTypeCount := mode(listingTypes(cohort))

	return &CommercialPatterns{
		Shipping: ShippingPatterns{
			FreeShipping: newStatistic(countWhere(cohort, func(c CompetitorListing) bool { return c.Shipping.FreeShipping }), n),
			Full:         newStatistic(countWhere(cohort, hasMode("full")), n),
			Flex:         newStatistic(countWhere(cohort, hasMode("flex")), n),
			StorePickup:  newStatistic(countWhere(cohort, func(c CompetitorListing) bool { return c.Shipping.StorePickup }), n),
		},
		Financing: FinancingPatterns{
			WithInstallments:    newStatistic(len(withInstallments), n),
			InterestFree:        newStatistic(interestFree, len(withInstallments)),
			AverageInstallments: int(math.Floor(mean(withInstallments) + 0.5)),
		},
		ListingType: ListingTypePattern{
			Type:      listingType,
			Statistic: newStatistic(listingTypeCount, n),
		},
		Warranty: newStatistic(countWhere(cohort, func(c CompetitorListing) bool { return c.Warranty != nil }), n),
		Reputation: ReputationPatterns{
			Platinum: newStatistic(countWhere(cohort, func(c CompetitorListing) bool {
				s := c.SellerReputation.PowerSellerStatus
				return s != nil && *s == "platinum"
			}), n),
		},
	}
}

func hasMode(mode string) func(CompetitorListing) bool {
	return func(c CompetitorListing) bool {
		return c.Shipping.Mode != nil && *c.Shipping.Mode == mode
	}
}

// installmentQuantities lists the installment count of every member that
// offers installments.
func installmentQuantities(cohort []CompetitorListing) []int {
	out := make([]int, 0, len(cohort))
	for _, c := range cohort {
		if c.Installments != nil {
			out = append(out, c.Installments.Quantity)
		}
	}
	return out
}

func listingTypes(cohort []CompetitorListing) []string {
	out := make([]string, len(cohort))
	for i, c := range cohort {
		out[i] = c.ListingTypeID
	}
	return out
}
