package output

import (
	"bytes"
	"encoding/csv"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// CSVSummarizer writes one row per item, followed by one row per recipe
// when the report holds both.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if len(report.Items) > 0 || len(report.Recipes) == 0 {
		header := []string{"ID", "Kind", "Name", "Supplier", "Amount", "Volume", "Color", "AlphaAcid", "Form", "Laboratory", "ProductID", "Attenuation", "Notes"}
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, it := range sortedItems(report.Items) {
			row := []string{it.ID, string(it.Kind), it.Name, it.Supplier, it.Amount, it.Volume, it.Color,
				it.AlphaAcid, it.Form, it.Laboratory, it.ProductID, it.Attenuation, it.Notes}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	if len(report.Recipes) > 0 {
		w.Flush()
		if len(report.Items) > 0 {
			buf.WriteString("\n")
		}
		header := []string{"ID", "Name", "Style", "BatchSize", "BoilSize", "BoilTime", "Efficiency", "GrainBill", "Ingredients"}
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, r := range sortedRecipes(report.Recipes) {
			row := []string{r.ID, r.Name, r.Style, r.BatchSize, r.BoilSize, r.BoilTime, r.Efficiency, r.GrainBill, intToString(len(r.Ingredients))}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
