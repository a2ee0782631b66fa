package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// View renders item in the display units of prefs.
func View(item domain.Item, prefs domain.Preferences) domain.ItemView {
	prefs = prefs.WithDefaults()
	return domain.ItemView{
		ID:          item.ID,
		Kind:        item.Kind,
		Name:        item.Name,
		Supplier:    item.Supplier,
		Amount:      units.FormatWeight(item.AmountGrams, prefs.WeightUnit, prefs.WeightPrecision),
		Volume:      units.FormatVolume(item.VolumeLiters, prefs.VolumeUnit, prefs.VolumePrecision),
		Color:       units.FormatColor(item.ColorEBC, prefs.ColorScale),
		AlphaAcid:   formatPercent(item.AlphaAcid),
		Form:        item.Form,
		Laboratory:  item.Laboratory,
		ProductID:   item.ProductID,
		Attenuation: formatPercent(item.Attenuation),
		Notes:       item.Notes,
	}
}

// Views renders a list of items.
func Views(items []domain.Item, prefs domain.Preferences) []domain.ItemView {
	out := make([]domain.ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, View(it, prefs))
	}
	return out
}

func formatPercent(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return units.Value(units.Round(d.Decimal.InexactFloat64(), 1)).Decimal.StringFixed(1) + "%"
}
