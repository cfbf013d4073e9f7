package competitor

import (
	"fmt"
	"math"
)

const interestFreeThreshold = 50

type PaymentStats struct {
	MostCommonInstallments int     `json:"mostCommonInstallments"`
	AverageInstallments    float64 `json:"averageInstallments"`
	InterestFreePercentage int     `json:"interestFreePercentage"`
	WithInstallments       int     `json:"withInstallments"`
}

type PaymentAnalysis struct {
	Recommendation
	Stats *PaymentStats `json:"stats,omitempty"`
}

// RecommendPayment compares the target's installment offer with the cohort.
// The rules are checked in order and the first match wins.
func RecommendPayment(cohort []CompetitorListing, target TargetListing) PaymentAnalysis {
	quantities := installmentQuantities(cohort)
	if len(quantities) == 0 {
		return PaymentAnalysis{Recommendation: Recommendation{
			Recommendation: "insufficient data",
			Reason:         "no competitor offers installments",
			Priority:       PriorityLow,
		}}
	}

	mostCommon, _ := mode(quantities)
	interestFree := countWhere(cohort, func(c CompetitorListing) bool {
		return c.Installments != nil && c.Installments.Rate == 0
	})
	stats := &PaymentStats{
		MostCommonInstallments: mostCommon,
		AverageInstallments:    math.Round(mean(quantities)*10) / 10,
		InterestFreePercentage: percentage(interestFree, len(quantities)),
		WithInstallments:       len(quantities),
	}

	var rec Recommendation
	switch {
	case target.InstallmentQuantity == 0:
		rec = Recommendation{
			Recommendation: "Enable installment financing",
			Reason:         fmt.Sprintf("%d%% of competitors offer installments", percentage(len(quantities), len(cohort))),
			Priority:       PriorityHigh,
		}
	case target.InstallmentQuantity < mostCommon:
		rec = Recommendation{
			Recommendation: fmt.Sprintf("Offer %d interest-free installments", mostCommon),
			Reason:         fmt.Sprintf("Most competitors offer %d installments, you offer %d", mostCommon, target.InstallmentQuantity),
			Priority:       PriorityHigh,
		}
	case !target.OffersInterestFree() && stats.InterestFreePercentage > interestFreeThreshold:
		rec = Recommendation{
			Recommendation: "Enable interest-free installments",
			Reason:         fmt.Sprintf("%d%% of competitors with installments offer them interest-free", stats.InterestFreePercentage),
			Priority:       PriorityMedium,
		}
	default:
		rec = Recommendation{
			Recommendation: "Installments are well configured",
			Reason:         fmt.Sprintf("You offer %d installments, in line with competitors", target.InstallmentQuantity),
			Priority:       PriorityLow,
		}
	}
	return PaymentAnalysis{Recommendation: rec, Stats: stats}
}
