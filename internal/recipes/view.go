package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// View renders recipe in the display units of prefs. Ingredient names are
// resolved through the item lookup; lines whose item has disappeared are
// shown with their ID.
func (s *Service) View(ctx context.Context, recipe domain.Recipe, prefs domain.Preferences) (domain.RecipeView, error) {
	prefs = prefs.WithDefaults()
	view := domain.RecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Style:       recipe.Style,
		BatchSize:   units.FormatVolume(recipe.BatchSizeLiters, prefs.VolumeUnit, prefs.VolumePrecision),
		BoilSize:    units.FormatVolume(recipe.BoilSizeLiters, prefs.VolumeUnit, prefs.VolumePrecision),
		Notes:       recipe.Notes,
		Ingredients: make([]domain.IngredientView, 0, len(recipe.Ingredients)),
	}
	if recipe.BoilTimeMinutes > 0 {
		view.BoilTime = fmt.Sprintf("%d min", recipe.BoilTimeMinutes)
	}
	if recipe.Efficiency.Valid {
		view.Efficiency = recipe.Efficiency.Decimal.StringFixed(1) + "%"
	}

	grainBill := decimal.Zero
	hasGrain := false
	for _, ing := range recipe.Ingredients {
		line := domain.IngredientView{ItemID: ing.ItemID, Name: ing.ItemID, Use: ing.Use}
		item, err := s.items.Get(ctx, ing.ItemID)
		switch {
		case err == nil:
			line.Name = item.Name
			line.Kind = item.Kind
			if item.Kind == domain.KindFermentable && ing.AmountGrams.Valid {
				grainBill = grainBill.Add(ing.AmountGrams.Decimal)
				hasGrain = true
			}
		case !errors.Is(err, domain.ErrNotFound):
			return view, err
		}

		if ing.AmountGrams.Valid {
			line.Amount = units.FormatWeight(ing.AmountGrams, prefs.WeightUnit, prefs.WeightPrecision)
		} else {
			line.Amount = units.FormatVolume(ing.VolumeLiters, prefs.VolumeUnit, prefs.VolumePrecision)
		}
		if ing.TimeMinutes > 0 {
			line.Time = fmt.Sprintf("%d min", ing.TimeMinutes)
		}
		view.Ingredients = append(view.Ingredients, line)
	}
	if hasGrain {
		view.GrainBill = units.FormatWeight(decimal.NullDecimal{Decimal: grainBill, Valid: true}, prefs.WeightUnit, prefs.WeightPrecision)
	}
	return view, nil
}

// Views renders a list of recipes.
func (s *Service) Views(ctx context.Context, recipes []domain.Recipe, prefs domain.Preferences) ([]domain.RecipeView, error) {
	out := make([]domain.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		v, err := s.View(ctx, r, prefs)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
