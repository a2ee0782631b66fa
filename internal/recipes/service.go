package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// ItemLookup resolves the inventory items referenced by ingredient lines.
type ItemLookup interface {
	Get(ctx context.Context, id string) (*domain.Item, error)
}

// Service converts recipe input to canonical units and renders recipe views.
type Service struct {
	repo  *Repository
	items ItemLookup
	log   zerolog.Logger
}

// NewService creates a recipe service. Logging is disabled until SetLogger is called.
func NewService(repo *Repository, items ItemLookup) *Service {
	return &Service{repo: repo, items: items, log: zerolog.Nop()}
}

// SetLogger sets the service logger.
func (s *Service) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("service", "recipes").Logger()
}

// Create stores a new recipe entered in the given preferences' units.
func (s *Service) Create(ctx context.Context, in domain.RecipeInput, prefs domain.Preferences) (*domain.Recipe, error) {
	recipe, err := FromInput(in, prefs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", recipe.ID).Str("name", recipe.Name).Int("ingredients", len(recipe.Ingredients)).Msg("recipe added")
	return recipe, nil
}

// Update replaces the recipe with id.
func (s *Service) Update(ctx context.Context, id string, in domain.RecipeInput, prefs domain.Preferences) (*domain.Recipe, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe, err := FromInput(in, prefs)
	if err != nil {
		return nil, err
	}
	recipe.ID = existing.ID
	recipe.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", recipe.ID).Msg("recipe updated")
	return recipe, nil
}

// Get returns one recipe.
func (s *Service) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes one recipe.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns recipes matching query; an empty query lists everything.
func (s *Service) List(ctx context.Context, query string) ([]domain.Recipe, error) {
	return s.repo.List(ctx, query)
}

// FromInput converts user input into a canonical recipe. Ingredient lines
// must carry a positive quantity.
func FromInput(in domain.RecipeInput, prefs domain.Preferences) (*domain.Recipe, error) {
	prefs = prefs.WithDefaults()

	vu := prefs.VolumeUnit
	if strings.TrimSpace(in.VolumeUnit) != "" {
		var err error
		if vu, err = units.ParseVolumeUnit(in.VolumeUnit); err != nil {
			return nil, err
		}
	}

	recipe := &domain.Recipe{
		Name:            strings.TrimSpace(in.Name),
		Style:           strings.TrimSpace(in.Style),
		Notes:           strings.TrimSpace(in.Notes),
		BoilTimeMinutes: in.BoilTimeMinutes,
		Ingredients:     make([]domain.Ingredient, 0, len(in.Ingredients)),
	}

	var err error
	if recipe.BatchSizeLiters, err = optionalLiters("batch size", in.BatchSize, vu); err != nil {
		return nil, err
	}
	if recipe.BoilSizeLiters, err = optionalLiters("boil size", in.BoilSize, vu); err != nil {
		return nil, err
	}
	if !in.Efficiency.IsBlank() {
		if recipe.Efficiency = in.Efficiency.Amount(); !recipe.Efficiency.Valid {
			return nil, fmt.Errorf("%w: efficiency %q is not a number", domain.ErrValidation, in.Efficiency)
		}
	}

	for i, line := range in.Ingredients {
		ing, err := ingredientFromInput(line, prefs)
		if err != nil {
			return nil, fmt.Errorf("ingredient %d: %w", i+1, err)
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

func ingredientFromInput(in domain.IngredientInput, prefs domain.Preferences) (domain.Ingredient, error) {
	ing := domain.Ingredient{
		ItemID:      strings.TrimSpace(in.ItemID),
		Use:         strings.TrimSpace(in.Use),
		TimeMinutes: in.TimeMinutes,
	}
	if !in.Amount.IsBlank() {
		wu := prefs.WeightUnit
		if strings.TrimSpace(in.WeightUnit) != "" {
			var err error
			if wu, err = units.ParseWeightUnit(in.WeightUnit); err != nil {
				return ing, err
			}
		}
		g, err := units.NormalizeQuantity(string(in.Amount), wu)
		if err != nil {
			return ing, fmt.Errorf("%w: amount %q: %w", domain.ErrValidation, in.Amount, err)
		}
		ing.AmountGrams = decimal.NullDecimal{Decimal: g, Valid: true}
	}
	if !in.Volume.IsBlank() {
		vu := prefs.VolumeUnit
		if strings.TrimSpace(in.VolumeUnit) != "" {
			var err error
			if vu, err = units.ParseVolumeUnit(in.VolumeUnit); err != nil {
				return ing, err
			}
		}
		l, err := units.NormalizeVolume(string(in.Volume), vu)
		if err != nil {
			return ing, fmt.Errorf("%w: volume %q: %w", domain.ErrValidation, in.Volume, err)
		}
		ing.VolumeLiters = decimal.NullDecimal{Decimal: l, Valid: true}
	}
	return ing, nil
}

func optionalLiters(field string, in units.Input, unit units.VolumeUnit) (decimal.NullDecimal, error) {
	if in.IsBlank() {
		return units.Empty, nil
	}
	v := units.ToLiters(string(in), unit)
	if !v.Valid {
		return units.Empty, fmt.Errorf("%w: %s %q is not a number", domain.ErrValidation, field, in)
	}
	return v, nil
}
