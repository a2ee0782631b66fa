package output

import (
	"sort"
	"strconv"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// orDash renders a missing display value as "-".
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intToString(i int) string { return strconv.Itoa(i) }

// sortedItems orders items by kind, then name, without touching the report.
func sortedItems(items []domain.ItemView) []domain.ItemView {
	out := append([]domain.ItemView(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return kindRank(out[i].Kind) < kindRank(out[j].Kind)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// sortedRecipes orders recipes by name.
func sortedRecipes(recipes []domain.RecipeView) []domain.RecipeView {
	out := append([]domain.RecipeView(nil), recipes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func kindRank(k domain.Kind) int {
	for i, kind := range domain.Kinds {
		if kind == k {
			return i
		}
	}
	return len(domain.Kinds)
}
