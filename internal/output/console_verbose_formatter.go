package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// ConsoleVerboseFormatter renders the full report as aligned text tables,
// including every recipe's ingredient lines.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	title := report.Title
	if title == "" {
		title = "BREWKEEPER REPORT"
	}
	fmt.Fprintln(&buf, strings.ToUpper(title))
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	prefs := report.Preferences.WithDefaults()
	fmt.Fprintf(&buf, "Units: weight %s, volume %s, color %s\n", prefs.WeightUnit, prefs.VolumeUnit, strings.ToUpper(string(prefs.ColorScale)))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if len(report.Items) > 0 {
		fmt.Fprintln(&buf)
		writeItems(&buf, report.Items)
	}
	for _, r := range sortedRecipes(report.Recipes) {
		fmt.Fprintln(&buf)
		writeRecipe(&buf, r)
	}

	s := Summarize(report)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Items: %d (out of stock: %d)  Recipes: %d  Ingredient lines: %d\n",
		s.Items, s.OutOfStock, s.Recipes, s.Ingredients)
	return buf.Bytes(), nil
}

func writeItems(buf *bytes.Buffer, items []domain.ItemView) {
	fmt.Fprintln(buf, "INVENTORY")
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tAMOUNT\tVOLUME\tCOLOR\tALPHA\tSUPPLIER\tID")
	for _, it := range sortedItems(items) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.Kind, it.Name, orDash(it.Amount), orDash(it.Volume), orDash(it.Color),
			orDash(it.AlphaAcid), orDash(it.Supplier), it.ID)
	}
	tw.Flush()
}

func writeRecipe(buf *bytes.Buffer, r domain.RecipeView) {
	heading := "RECIPE: " + r.Name
	if r.Style != "" {
		heading += " (" + r.Style + ")"
	}
	fmt.Fprintln(buf, heading)
	fmt.Fprintln(buf, strings.Repeat("-", len(heading)))
	fmt.Fprintf(buf, "Batch: %s  Boil: %s  Boil time: %s  Efficiency: %s\n",
		orDash(r.BatchSize), orDash(r.BoilSize), orDash(r.BoilTime), orDash(r.Efficiency))
	if r.GrainBill != "" {
		fmt.Fprintf(buf, "Grain bill: %s\n", r.GrainBill)
	}
	if len(r.Ingredients) > 0 {
		tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  INGREDIENT\tKIND\tAMOUNT\tUSE\tTIME")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				ing.Name, orDash(string(ing.Kind)), orDash(ing.Amount), orDash(ing.Use), orDash(ing.Time))
		}
		tw.Flush()
	}
	if r.Notes != "" {
		fmt.Fprintf(buf, "Notes: %s\n", r.Notes)
	}
	fmt.Fprintf(buf, "ID: %s\n", r.ID)
}
