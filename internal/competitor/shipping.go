package competitor

import "fmt"

const (
	freeShippingThreshold = 70
	fullModeThreshold     = 50
)

type ShippingAnalysis struct {
	Recommendation
	FreeShippingPercentage int `json:"freeShippingPercentage"`
	FullPercentage         int `json:"fullPercentage"`
}

// RecommendShipping compares the target's shipping setup with the cohort.
// The rules are checked in order and the first match wins.
func RecommendShipping(cohort []CompetitorListing, target TargetListing) ShippingAnalysis {
	n := len(cohort)
	out := ShippingAnalysis{
		FreeShippingPercentage: percentage(countWhere(cohort, func(c CompetitorListing) bool { return c.Shipping.FreeShipping }), n),
		FullPercentage:         percentage(countWhere(cohort, hasMode("full")), n),
	}

	switch {
	case !target.FreeShipping && out.FreeShippingPercentage > freeShippingThreshold:
		out.Recommendation = Recommendation{
			Recommendation: "Enable free shipping",
			Reason:         fmt.Sprintf("%d%% of competitors offer free shipping", out.FreeShippingPercentage),
			Priority:       PriorityHigh,
		}
	case target.FulfillmentMode != "full" && out.FullPercentage > fullModeThreshold:
		out.Recommendation = Recommendation{
			Recommendation: "Consider full fulfillment",
			Reason:         fmt.Sprintf("%d%% of competitors ship with full fulfillment", out.FullPercentage),
			Priority:       PriorityMedium,
		}
	default:
		out.Recommendation = Recommendation{
			Recommendation: "Shipping is well configured",
			Reason:         "Your shipping matches what competitors offer",
			Priority:       PriorityLow,
		}
	}
	return out
}
