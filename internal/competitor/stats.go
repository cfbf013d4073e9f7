package competitor

import "math"

// Statistic is a count and its share of a denominator.
type Statistic struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

func newStatistic(count, total int) Statistic {
	return Statistic{Count: count, Percentage: percentage(count, total)}
}

// percentage rounds half up, and is 0 for an empty denominator.
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(100*float64(count)/float64(total) + 0.5))
}

func countWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// mode returns the most frequent value and its count. Ties go to the value
// seen first in values, so the result only depends on input order.
func mode[T comparable](values []T) (T, int) {
	var (
		best      T
		bestCount int
	)
	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, bestCount
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
