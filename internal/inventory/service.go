package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// Service turns user input in display units into canonical items and back.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates an inventory service. Logging is disabled until SetLogger is called.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, log: zerolog.Nop()}
}

// SetLogger sets the service logger.
func (s *Service) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("service", "inventory").Logger()
}

// Create stores a new item entered in the given preferences' units.
func (s *Service) Create(ctx context.Context, in domain.ItemInput, prefs domain.Preferences) (*domain.Item, error) {
	item, err := FromInput(in, prefs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", item.ID).Str("name", item.Name).Msg("item added")
	return item, nil
}

// Update replaces the item with id using fresh input.
func (s *Service) Update(ctx context.Context, id string, in domain.ItemInput, prefs domain.Preferences) (*domain.Item, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := FromInput(in, prefs)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", item.ID).Msg("item updated")
	return item, nil
}

// Adjust adds delta (negative to consume) to an item's stock. The delta is in
// unit, or the preferred weight unit when unit is empty. Stock cannot go below zero.
func (s *Service) Adjust(ctx context.Context, id string, delta string, unit string, prefs domain.Preferences) (*domain.Item, error) {
	wu, err := weightUnit(unit, prefs)
	if err != nil {
		return nil, err
	}
	change := units.ToGrams(delta, wu)
	if !change.Valid {
		return nil, fmt.Errorf("%w: %q is not a quantity", domain.ErrValidation, delta)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	current := decimal.Zero
	if item.AmountGrams.Valid {
		current = item.AmountGrams.Decimal
	}
	next := current.Add(change.Decimal)
	if next.IsNegative() {
		return nil, fmt.Errorf("%w: only %s in stock", domain.ErrValidation,
			units.FormatWeight(item.AmountGrams, wu, prefs.WeightPrecision))
	}
	item.AmountGrams = decimal.NullDecimal{Decimal: next, Valid: true}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one item.
func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes one item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("item deleted")
	return nil
}

// List returns items matching filter.
func (s *Service) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	return s.repo.List(ctx, filter)
}

// FromInput converts user input into a canonical item. Blank quantities stay
// empty; quantities that are present but unparseable are rejected.
func FromInput(in domain.ItemInput, prefs domain.Preferences) (*domain.Item, error) {
	prefs = prefs.WithDefaults()

	kind, err := domain.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	item := &domain.Item{
		Kind:       kind,
		Name:       strings.TrimSpace(in.Name),
		Supplier:   strings.TrimSpace(in.Supplier),
		Notes:      strings.TrimSpace(in.Notes),
		Form:       strings.TrimSpace(in.Form),
		Laboratory: strings.TrimSpace(in.Laboratory),
		ProductID:  strings.TrimSpace(in.ProductID),
	}

	if !in.Amount.IsBlank() {
		wu, err := weightUnit(in.WeightUnit, prefs)
		if err != nil {
			return nil, err
		}
		if item.AmountGrams = units.ToGrams(string(in.Amount), wu); !item.AmountGrams.Valid {
			return nil, fmt.Errorf("%w: amount %q is not a number", domain.ErrValidation, in.Amount)
		}
	}
	if !in.Volume.IsBlank() {
		vu, err := volumeUnit(in.VolumeUnit, prefs)
		if err != nil {
			return nil, err
		}
		if item.VolumeLiters = units.ToLiters(string(in.Volume), vu); !item.VolumeLiters.Valid {
			return nil, fmt.Errorf("%w: volume %q is not a number", domain.ErrValidation, in.Volume)
		}
	}
	if !in.Color.IsBlank() {
		scale := prefs.ColorScale
		if in.ColorScale != "" {
			if scale, err = units.ParseColorScale(in.ColorScale); err != nil {
				return nil, err
			}
		}
		c := in.Color.Amount()
		if !c.Valid {
			return nil, fmt.Errorf("%w: color %q is not a number", domain.ErrValidation, in.Color)
		}
		if scale == units.SRM {
			c = units.Value(units.SRMToEBC(c.Decimal.InexactFloat64()))
		}
		item.ColorEBC = c
	}
	if item.AlphaAcid, err = percent("alpha acid", in.AlphaAcid); err != nil {
		return nil, err
	}
	if item.Attenuation, err = percent("attenuation", in.Attenuation); err != nil {
		return nil, err
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func percent(field string, in units.Input) (decimal.NullDecimal, error) {
	if in.IsBlank() {
		return units.Empty, nil
	}
	v := in.Amount()
	if !v.Valid {
		return units.Empty, fmt.Errorf("%w: %s %q is not a number", domain.ErrValidation, field, in)
	}
	return v, nil
}

func weightUnit(tag string, prefs domain.Preferences) (units.WeightUnit, error) {
	if strings.TrimSpace(tag) == "" {
		return prefs.WeightUnit, nil
	}
	return units.ParseWeightUnit(tag)
}

func volumeUnit(tag string, prefs domain.Preferences) (units.VolumeUnit, error) {
	if strings.TrimSpace(tag) == "" {
		return prefs.VolumeUnit, nil
	}
	return units.ParseVolumeUnit(tag)
}
