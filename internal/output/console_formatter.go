package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// ConsoleFormatter prints one line per item and recipe.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	for _, it := range sortedItems(report.Items) {
		qty := it.Amount
		if qty == "" {
			qty = it.Volume
		}
		fmt.Fprintf(&buf, "%-12s %-30s %s\n", it.Kind, it.Name, orDash(qty))
	}
	for _, r := range sortedRecipes(report.Recipes) {
		fmt.Fprintf(&buf, "%-12s %-30s %s\n", "recipe", r.Name, orDash(r.BatchSize))
	}

	s := Summarize(report)
	parts := make([]string, 0, len(domain.Kinds)+1)
	for _, k := range domain.Kinds {
		if n := s.ByKind[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if s.Recipes > 0 {
		parts = append(parts, fmt.Sprintf("%d recipes", s.Recipes))
	}
	if len(parts) == 0 {
		fmt.Fprintln(&buf, "nothing to show")
	} else {
		fmt.Fprintf(&buf, "\n%s\n", strings.Join(parts, ", "))
	}
	return buf.Bytes(), nil
}
