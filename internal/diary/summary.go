package diary

import (
	"cmp"
	"math"
	"slices"
)

// Slice is one bucket of a breakdown.
type Slice struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Summary totals the diary and breaks it down by category and feeling.
type Summary struct {
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	ByCategory []Slice `json:"byCategory"`
	ByFeeling  []Slice `json:"byFeeling"`
}

// Summarize builds the breakdowns. Buckets are sorted by amount, largest
// first, with ties in form order; empty buckets are left out.
func Summarize(expenses []Expense) Summary {
	s := Summary{Count: len(expenses)}
	byCat := make(map[string]float64)
	byFeel := make(map[string]float64)
	for _, e := range expenses {
		s.Total += e.Amount
		byCat[string(e.Category)] += e.Amount
		byFeel[string(e.Feeling)] += e.Amount
	}

	catOrder := make([]string, 0, len(categories))
	for _, c := range categories {
		catOrder = append(catOrder, string(c))
	}
	feelOrder := make([]string, 0, len(feelings))
	for _, f := range feelings {
		feelOrder = append(feelOrder, string(f))
	}

	s.ByCategory = breakdown(byCat, catOrder, s.Total)
	s.ByFeeling = breakdown(byFeel, feelOrder, s.Total)
	return s
}

func breakdown(sums map[string]float64, order []string, total float64) []Slice {
	labels := slices.Clone(order)
	var extra []string
	for k := range sums {
		if !slices.Contains(order, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	labels = append(labels, extra...)

	out := make([]Slice, 0, len(sums))
	for _, l := range labels {
		amt := sums[l]
		if amt <= 0 {
			continue
		}
		out = append(out, Slice{Label: l, Amount: amt, Percent: percent(amt, total)})
	}
	slices.SortStableFunc(out, func(a, b Slice) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
	return out
}

// percent is amt/total as a percentage rounded to one decimal.
func percent(amt, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(amt/total*1000) / 10
}
