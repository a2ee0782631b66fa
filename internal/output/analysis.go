package output

import "github.com/brewkeeper/brewkeeper/internal/domain"

// Summary counts what a report contains.
type Summary struct {
	Items       int
	ByKind      map[domain.Kind]int
	OutOfStock  int
	Recipes     int
	Ingredients int
}

// Summarize counts the items per kind and the recipe lines of a report.
// Items with neither an amount nor a volume are counted as out of stock.
func Summarize(report *domain.Report) Summary {
	s := Summary{ByKind: make(map[domain.Kind]int)}
	for _, it := range report.Items {
		s.Items++
		s.ByKind[it.Kind]++
		if isEmptyStock(it) {
			s.OutOfStock++
		}
	}
	for _, r := range report.Recipes {
		s.Recipes++
		s.Ingredients += len(r.Ingredients)
	}
	return s
}

func isEmptyStock(it domain.ItemView) bool {
	return isZeroQuantity(it.Amount) && isZeroQuantity(it.Volume)
}

// isZeroQuantity reports whether a formatted quantity is missing or zero.
func isZeroQuantity(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch {
		case r == ' ':
			return true
		case r != '0' && r != '.':
			return false
		}
	}
	return true
}
