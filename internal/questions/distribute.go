// Package questions allocates question budgets across evaluation categories,
// generates adaptive question pools and standardized question sets via LLM
// calls, and builds the interviewer-facing prompt.
package questions

import (
	"math"
	"sort"

	"github.com/jonathan/interview-screener/internal/types"
)

// Distribute allocates total questions across categories proportionally to the
// criteria percentages, then reconciles rounding drift so the counts sum to
// total exactly. Zero-percentage categories never receive questions. The result
// is never all-zero when total > 0.
func Distribute(criteria types.EvaluationCriteria, total int) types.QuestionDistribution {
	var dist types.QuestionDistribution
	if total <= 0 {
		return dist
	}

	for _, cat := range types.Categories() {
		pct := criteria.Percentage(cat)
		if pct > 0 {
			dist.Add(cat, int(math.Round(float64(pct)/100*float64(total))))
		}
	}

	// All percentages zero, or everything rounded down to zero: give the full
	// budget to the first positive-percentage category, or to screening when
	// none is positive.
	if dist.Total() == 0 {
		assigned := false
		for _, cat := range types.Categories() {
			if criteria.Percentage(cat) > 0 {
				dist.Add(cat, total)
				assigned = true
				break
			}
		}
		if !assigned {
			dist.Screening = total
		}
	}

	if dist.Total() > total {
		reconcileRemove(&dist, total)
	} else if dist.Total() < total {
		reconcileAdd(&dist, criteria, total-dist.Total())
	}

	return dist
}

// reconcileRemove drops excess questions one at a time until the counts sum
// to total, cycling over the categories that currently hold questions, largest
// counts first. Ties keep declaration order. Categories drained to zero drop
// out of the rotation, so the loop always terminates at an exact sum.
func reconcileRemove(dist *types.QuestionDistribution, total int) {
	for dist.Total() > total {
		var order []types.Category
		for _, cat := range types.Categories() {
			if dist.Count(cat) > 0 {
				order = append(order, cat)
			}
		}
		sort.SliceStable(order, func(i, j int) bool {
			return dist.Count(order[i]) > dist.Count(order[j])
		})

		for _, cat := range order {
			if dist.Total() == total {
				break
			}
			dist.Add(cat, -1)
		}
	}
}

// reconcileAdd hands out the shortfall one question at a time, cycling over
// positive-percentage categories, largest percentage first. Zero-percentage
// categories are never topped up.
func reconcileAdd(dist *types.QuestionDistribution, criteria types.EvaluationCriteria, remaining int) {
	var order []types.Category
	for _, cat := range types.Categories() {
		if criteria.Percentage(cat) > 0 {
			order = append(order, cat)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return criteria.Percentage(order[i]) > criteria.Percentage(order[j])
	})

	for i := 0; i < remaining && len(order) > 0; i++ {
		dist.Add(order[i%len(order)], 1)
	}
}
