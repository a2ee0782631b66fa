package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BREWKEEPER_DATA_DIR", dir)
	t.Setenv("BREWKEEPER_DB", "")
	t.Setenv("BREWKEEPER_PREFS", "")
	t.Setenv("BREWKEEPER_LOG_LEVEL", "disabled")
	t.Setenv("BREWKEEPER_LOG_PRETTY", "false")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", "testdata-none.env"}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func createdID(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestConvertCommands(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "weight", "454", "--weight-unit", "oz"}, "16.01 oz\n"},
		{[]string{"convert", "weight", "28.349523125", "--weight-unit", "ounces"}, "1 oz\n"},
		{[]string{"convert", "weight", "1234", "--weight-unit", "kg", "--precision", "1"}, "1.2 kg\n"},
		{[]string{"convert", "volume", "23", "--volume-unit", "gal"}, "6.08 gal\n"},
		{[]string{"convert", "volume", "3.78541", "--volume-unit", "gal"}, "1 gal\n"},
		{[]string{"convert", "volume", "1.005"}, "1.01 l\n"},
		{[]string{"convert", "srm", "39.4"}, "20.0\n"},
		{[]string{"convert", "liters", "2,5"}, "2.5 l\n"},
		{[]string{"convert", "grams", "1", "--weight-unit", "oz"}, "28.349523125 g\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			assert.Equal(t, tt.want, mustRun(t, tt.args...))
		})
	}
}

func TestConvertCommands_Empty(t *testing.T) {
	setupEnv(t)
	for _, args := range [][]string{
		{"convert", "srm", "0"},
		{"convert", "weight", "abc"},
		{"convert", "liters", ""},
	} {
		out, err := run(t, args...)
		assert.Error(t, err, args)
		assert.Empty(t, out)
	}

	_, err := run(t, "convert", "weight", "1", "--weight-unit", "stone")
	assert.ErrorIs(t, err, units.ErrInvalidUnit)
}

func TestInventoryCommands(t *testing.T) {
	dir := setupEnv(t)

	out := mustRun(t, "inventory", "add", "--kind", "hop", "--name", "Cascade", "--amount", "2", "--unit", "oz", "--alpha", "5.5")
	hopID := createdID(t, out)
	out = mustRun(t, "inventory", "add", "--kind", "fermentable", "--name", "Maris Otter", "--amount", "25", "--unit", "kg", "--color", "3", "--scale", "srm")
	maltID := createdID(t, out)

	out = mustRun(t, "inventory", "list")
	assert.Contains(t, out, "Maris Otter")
	assert.Contains(t, out, "25000 g")
	assert.Contains(t, out, "57 g")

	out = mustRun(t, "inventory", "list", "--kind", "hops", "--weight-unit", "oz", "-f", "csv")
	assert.Contains(t, out, "Cascade")
	assert.Contains(t, out, "2 oz")
	assert.NotContains(t, out, "Maris Otter")

	out = mustRun(t, "inventory", "search", "otter", "--color-scale", "srm", "-f", "json")
	assert.Contains(t, out, `"color": "3.0"`)

	out = mustRun(t, "inventory", "adjust", hopID, "-0.5", "--unit", "oz")
	assert.Equal(t, "Cascade: 43 g\n", out)
	_, err := run(t, "inventory", "adjust", hopID, "-1", "--unit", "kg")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, "inventory", "update", hopID, "--amount", "1", "--unit", "stone")
	assert.ErrorIs(t, err, units.ErrInvalidUnit)
	mustRun(t, "inventory", "update", hopID, "--supplier", "Yakima Chief")
	out = mustRun(t, "inventory", "show", hopID, "-f", "json")
	assert.Contains(t, out, `"supplier": "Yakima Chief"`)
	assert.Contains(t, out, `"amount": "43 g"`, "untouched fields keep their values")

	_, err = run(t, "inventory", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	importFile := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(importFile, []byte(`
- kind: yeast
  name: US-05
  laboratory: Fermentis
  attenuation: 81
- kind: misc
  name: Lactic acid
  volume: 250
  volume_unit: ml
`), 0o600))
	assert.Equal(t, "Imported 2 items\n", mustRun(t, "inventory", "import", importFile))

	badFile := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badFile, []byte("- {kind: hop, name: Saaz}\n- {kind: grain, name: Oats}\n"), 0o600))
	_, err = run(t, "inventory", "import", badFile)
	assert.ErrorIs(t, err, domain.ErrValidation)
	out = mustRun(t, "inventory", "search", "saaz")
	assert.NotContains(t, out, "Saaz", "a bad entry imports nothing")

	out = mustRun(t, "inventory", "list", "--volume-unit", "ml")
	assert.Contains(t, out, "250 ml")
	assert.Contains(t, out, "1 fermentable, 1 hop, 1 misc, 1 yeast")

	exportDir := t.TempDir()
	out = mustRun(t, "inventory", "export", "-f", "yaml", "-o", exportDir)
	require.True(t, strings.HasPrefix(out, "Wrote "+exportDir), out)
	data, err := os.ReadFile(strings.TrimSpace(strings.TrimPrefix(out, "Wrote ")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: US-05")

	_, err = run(t, "inventory", "export", "-f", "pdf", "-o", exportDir)
	assert.Error(t, err)

	mustRun(t, "inventory", "delete", maltID)
	_, err = run(t, "inventory", "delete", maltID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeCommands(t *testing.T) {
	setupEnv(t)

	maltID := createdID(t, mustRun(t, "inventory", "add", "--kind", "fermentable", "--name", "Maris Otter", "--amount", "25", "--unit", "kg"))
	hopID := createdID(t, mustRun(t, "inventory", "add", "--kind", "hop", "--name", "Fuggle", "--amount", "200"))

	out := mustRun(t, "recipe", "add", "--name", "Ordinary Bitter", "--style", "English Bitter", "--batch", "23",
		"--boil-time", "60", "--efficiency", "72",
		"-i", maltID+":4:kg:mash", "-i", hopID+":30:g:boil:60")
	recipeID := createdID(t, out)

	out = mustRun(t, "recipe", "show", recipeID)
	assert.Contains(t, out, "RECIPE: Ordinary Bitter (English Bitter)")
	assert.Contains(t, out, "Grain bill: 4000 g")
	assert.Contains(t, out, "Fuggle")

	out = mustRun(t, "recipe", "show", recipeID, "--volume-unit", "gal", "-f", "json")
	assert.Contains(t, out, `"batch_size": "6.08 gal"`)
	assert.Contains(t, out, `"efficiency": "72.0%"`)

	assert.Contains(t, mustRun(t, "recipe", "list"), "Ordinary Bitter")
	assert.Contains(t, mustRun(t, "recipe", "search", "english"), "Ordinary Bitter")
	assert.NotContains(t, mustRun(t, "recipe", "search", "stout"), "Ordinary Bitter")

	exportDir := t.TempDir()
	out = mustRun(t, "recipe", "export", "-o", exportDir)
	data, err := os.ReadFile(strings.TrimSpace(strings.TrimPrefix(out, "Wrote ")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ordinary Bitter,2,"+hopID+",Fuggle,hop,30 g,boil,60 min")

	_, err = run(t, "recipe", "add", "--name", "Broken", "-i", maltID+":0")
	assert.ErrorIs(t, err, units.ErrNonPositiveQuantity)
	_, err = run(t, "recipe", "add", "--name", "Broken", "-i", "nonsense")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, "inventory", "delete", maltID)
	assert.Error(t, err, "items used by a recipe cannot be deleted")

	mustRun(t, "recipe", "delete", recipeID)
	mustRun(t, "inventory", "delete", maltID)
}

func TestRecipeAddFromFile(t *testing.T) {
	dir := setupEnv(t)
	maltID := createdID(t, mustRun(t, "inventory", "add", "--kind", "fermentable", "--name", "Pilsner", "--amount", "10", "--unit", "kg"))

	file := filepath.Join(dir, "pils.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
name: Pils
batch_size: "5"
volume_unit: gal
boil_time_minutes: 90
ingredients:
  - item_id: `+maltID+`
    amount: 9
    weight_unit: lb-is-not-supported
`), 0o600))
	_, err := run(t, "recipe", "add", "--file", file)
	assert.ErrorIs(t, err, units.ErrInvalidUnit)

	require.NoError(t, os.WriteFile(file, []byte(`
name: Pils
batch_size: "5"
volume_unit: gal
boil_time_minutes: 90
ingredients:
  - item_id: `+maltID+`
    amount: 4.1
    weight_unit: kg
`), 0o600))
	id := createdID(t, mustRun(t, "recipe", "add", "--file", file))
	out := mustRun(t, "recipe", "show", id, "--volume-unit", "l")
	assert.Contains(t, out, "Batch: 18.93 l")
	assert.Contains(t, out, "Boil time: 90 min")
}

func TestSessionAndPreferences(t *testing.T) {
	dir := setupEnv(t)

	assert.Equal(t, "not logged in\n", mustRun(t, "whoami"))

	out := mustRun(t, "prefs", "set", "--weight", "ounces")
	assert.Equal(t, "Saved preferences to "+filepath.Join(dir, "preferences.yaml")+"\n", out)
	assert.Contains(t, mustRun(t, "prefs", "show"), "weight_unit: oz")
	assert.Equal(t, "43.53 oz\n", mustRun(t, "convert", "weight", "1234"))

	assert.Equal(t, "Logged in as alice\n", mustRun(t, "login", "alice"))
	assert.Contains(t, mustRun(t, "whoami"), "alice")
	assert.Contains(t, mustRun(t, "prefs", "show"), "weight_unit: oz", "file preferences apply until alice saves her own")

	assert.Equal(t, "Saved preferences for alice\n", mustRun(t, "prefs", "set", "--weight", "kg", "--weight-precision", "1"))
	assert.Equal(t, "1.2 kg\n", mustRun(t, "convert", "weight", "1234"))

	_, err := run(t, "prefs", "set", "--volume", "pint")
	assert.ErrorIs(t, err, units.ErrInvalidUnit)

	assert.Equal(t, "Reset preferences for alice\n", mustRun(t, "prefs", "reset"))
	assert.Equal(t, "43.53 oz\n", mustRun(t, "convert", "weight", "1234"))

	assert.Equal(t, "Logged out\n", mustRun(t, "logout"))
	_, err = run(t, "logout")
	assert.Error(t, err)
	_, err = run(t, "prefs", "reset")
	assert.Error(t, err)
}

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		arg     string
		want    domain.IngredientInput
		wantErr error
	}{
		{"m1:4", domain.IngredientInput{ItemID: "m1", Amount: "4"}, nil},
		{"m1:4:kg:mash", domain.IngredientInput{ItemID: "m1", Amount: "4", WeightUnit: "kg", Use: "mash"}, nil},
		{"h1:1:oz:boil:15", domain.IngredientInput{ItemID: "h1", Amount: "1", WeightUnit: "oz", Use: "boil", TimeMinutes: 15}, nil},
		{"a1:5:ml", domain.IngredientInput{ItemID: "a1", Volume: "5", VolumeUnit: "ml"}, nil},
		{"m1", domain.IngredientInput{}, domain.ErrValidation},
		{":4", domain.IngredientInput{}, domain.ErrValidation},
		{"m1:4:stone", domain.IngredientInput{}, units.ErrInvalidUnit},
		{"h1:1:oz:boil:soon", domain.IngredientInput{}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseIngredient(tt.arg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
