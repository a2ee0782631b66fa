package output

import (
	"bytes"
	"encoding/csv"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// CSVDetailedExporter writes one row per recipe ingredient line.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Recipe", "Line", "ItemID", "Ingredient", "Kind", "Amount", "Use", "Time"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range sortedRecipes(report.Recipes) {
		for i, ing := range r.Ingredients {
			row := []string{r.Name, intToString(i + 1), ing.ItemID, ing.Name, string(ing.Kind), ing.Amount, ing.Use, ing.Time}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
