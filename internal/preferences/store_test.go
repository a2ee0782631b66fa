package preferences

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewkeeper/brewkeeper/internal/database"
	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

func newTestStore(t *testing.T, fallback func() domain.Preferences) *Store {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db.Conn(), fallback, zerolog.Nop())
}

func TestStore_FallbackWhenUnset(t *testing.T) {
	fileDefaults := func() domain.Preferences {
		return domain.Preferences{WeightUnit: units.Ounce}
	}
	store := newTestStore(t, fileDefaults)

	prefs, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, units.Ounce, prefs.WeightUnit)
	assert.Equal(t, units.Liter, prefs.VolumeUnit, "unset fields take defaults")
	assert.Equal(t, 2, prefs.WeightPrecision.For(units.Ounce))
}

func TestStore_SetGetReset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	prefs := domain.DefaultPreferences()
	prefs.WeightUnit = units.Kilogram
	prefs.VolumeUnit = units.Gallon
	prefs.ColorScale = units.SRM
	prefs.WeightPrecision = units.WeightPrecision{units.Kilogram: 1}
	require.NoError(t, store.Set(ctx, "alice", prefs))

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, units.Kilogram, got.WeightUnit)
	assert.Equal(t, units.Gallon, got.VolumeUnit)
	assert.Equal(t, units.SRM, got.ColorScale)
	assert.Equal(t, 1, got.WeightPrecision.For(units.Kilogram))
	assert.Equal(t, 2, got.WeightPrecision.For(units.Ounce))

	other, err := store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, units.Gram, other.WeightUnit, "preferences are per user")

	prefs.WeightUnit = units.Ounce
	require.NoError(t, store.Set(ctx, "alice", prefs))
	got, err = store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, units.Ounce, got.WeightUnit)

	require.NoError(t, store.Reset(ctx, "alice"))
	got, err = store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, units.Gram, got.WeightUnit)
}

func TestStore_SetRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	prefs := domain.DefaultPreferences()
	prefs.WeightUnit = "stone"
	assert.ErrorIs(t, store.Set(ctx, "alice", prefs), units.ErrInvalidUnit)

	prefs = domain.DefaultPreferences()
	prefs.VolumePrecision = units.VolumePrecision{units.Liter: 12}
	assert.ErrorIs(t, store.Set(ctx, "alice", prefs), domain.ErrValidation)

	assert.ErrorIs(t, store.Set(ctx, "", domain.DefaultPreferences()), domain.ErrValidation)
}
