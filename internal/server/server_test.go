package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewkeeper/brewkeeper/internal/database"
	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/inventory"
	"github.com/brewkeeper/brewkeeper/internal/preferences"
	"github.com/brewkeeper/brewkeeper/internal/recipes"
)

func newTestServer(t *testing.T, token string) *Server {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	itemRepo := inventory.NewRepository(db.Conn(), zerolog.Nop())
	return New(Config{
		Log:         zerolog.Nop(),
		Inventory:   inventory.NewService(itemRepo),
		Recipes:     recipes.NewService(recipes.NewRepository(db.Conn(), zerolog.Nop()), itemRepo),
		Preferences: preferences.NewStore(db.Conn(), nil, zerolog.Nop()),
		APIToken:    token,
		DevMode:     true,
	})
}

type request struct {
	method string
	path   string
	body   any
	header map[string]string
}

func do(t *testing.T, s *Server, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if req.body != nil {
		if raw, ok := req.body.(string); ok {
			body.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&body).Encode(req.body))
		}
	}
	method := req.method
	if method == "" {
		method = http.MethodGet
	}
	r := httptest.NewRequest(method, req.path, &body)
	r.Header.Set("Content-Type", "application/json")
	for k, v := range req.header {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "secret")
	w := do(t, s, request{path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
}

func TestConvertEndpoints(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		name     string
		path     string
		status   int
		wantText string
		wantNull bool
	}{
		{"grams to ounces", "/api/convert/weight?grams=454&unit=oz", http.StatusOK, "16.01 oz", false},
		{"grams to kilograms with precision", "/api/convert/weight?grams=1234&unit=kg&precision=1", http.StatusOK, "1.2 kg", false},
		{"missing grams", "/api/convert/weight?unit=oz", http.StatusOK, "", true},
		{"non-numeric grams", "/api/convert/weight?grams=abc", http.StatusOK, "", true},
		{"zero grams is a value", "/api/convert/weight?grams=0&unit=g", http.StatusOK, "0 g", false},
		{"liters to gallons", "/api/convert/volume?liters=23&unit=gallon", http.StatusOK, "6.08 gal", false},
		{"default volume unit", "/api/convert/volume?liters=1.005", http.StatusOK, "1.01 l", false},
		{"query preference override", "/api/convert/volume?liters=3.78541&volume_unit=gal", http.StatusOK, "1 gal", false},
		{"ebc to srm", "/api/convert/srm?ebc=39.4", http.StatusOK, "20.0", false},
		{"zero ebc", "/api/convert/srm?ebc=0", http.StatusOK, "", true},
		{"comma decimal liters", "/api/convert/liters?input=2,5&unit=l", http.StatusOK, "2.5 l", false},
		{"blank liters", "/api/convert/liters?input=&unit=gal", http.StatusOK, "", true},
		{"kilograms to grams", "/api/convert/grams?input=1.5&unit=kg", http.StatusOK, "1500 g", false},
		{"unknown unit", "/api/convert/weight?grams=1&unit=stone", http.StatusBadRequest, "", false},
		{"bad precision", "/api/convert/volume?liters=1&precision=many", http.StatusBadRequest, "", false},
		{"bad preference override", "/api/convert/volume?liters=1&volume_unit=pint", http.StatusBadRequest, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, request{path: tt.path})
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				assert.Contains(t, decode[map[string]string](t, w), "error")
				return
			}
			resp := decode[ConversionResponse](t, w)
			assert.Equal(t, tt.wantText, resp.Text)
			assert.Equal(t, tt.wantNull, !resp.Value.Valid)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, "secret")

	w := do(t, s, request{path: "/api/convert/srm?ebc=10"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	w = do(t, s, request{path: "/api/convert/srm?ebc=10", header: map[string]string{"Authorization": "Bearer wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, request{path: "/api/convert/srm?ebc=10", header: map[string]string{"Authorization": "Bearer secret"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5.1", decode[ConversionResponse](t, w).Text)
}

func TestInventoryEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	w := do(t, s, request{method: http.MethodPost, path: "/api/inventory", body: map[string]string{
		"kind": "hop", "name": "Cascade", "amount": "2", "weight_unit": "oz", "alpha_acid": "5.5",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.ItemView](t, w)
	assert.Equal(t, "57 g", created.Amount)
	assert.Equal(t, "5.5%", created.AlphaAcid)

	w = do(t, s, request{path: "/api/inventory/" + created.ID + "?weight_unit=oz"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2 oz", decode[domain.ItemView](t, w).Amount)

	w = do(t, s, request{path: "/api/inventory?kind=hops&q=casc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.ItemView](t, w), 1)

	w = do(t, s, request{path: "/api/inventory?kind=fermentable"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.ItemView](t, w))

	w = do(t, s, request{path: "/api/inventory?kind=grain"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, request{method: http.MethodPost, path: "/api/inventory/" + created.ID + "/adjust", body: AdjustRequest{Delta: "-10"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "47 g", decode[domain.ItemView](t, w).Amount)

	w = do(t, s, request{method: http.MethodPost, path: "/api/inventory/" + created.ID + "/adjust", body: AdjustRequest{Delta: "-1", Unit: "kg"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, request{method: http.MethodPut, path: "/api/inventory/" + created.ID, body: map[string]string{
		"kind": "hop", "name": "Cascade", "amount": "100",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "100 g", decode[domain.ItemView](t, w).Amount)

	w = do(t, s, request{method: http.MethodPost, path: "/api/inventory", body: `{"kind":"hop","name":"x","colour":"5"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown fields are rejected")

	w = do(t, s, request{method: http.MethodPost, path: "/api/inventory", body: map[string]string{"kind": "hop", "name": "x", "amount": "lots"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, request{method: http.MethodDelete, path: "/api/inventory/" + created.ID})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, request{path: "/api/inventory/" + created.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	w := do(t, s, request{method: http.MethodPost, path: "/api/inventory", body: map[string]string{
		"kind": "fermentable", "name": "Maris Otter", "amount": "25", "weight_unit": "kg", "color": "6",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	malt := decode[domain.ItemView](t, w)

	w = do(t, s, request{method: http.MethodPost, path: "/api/recipes", body: domain.RecipeInput{
		Name:            "Ordinary Bitter",
		BatchSize:       "23",
		BoilTimeMinutes: 60,
		Ingredients:     []domain.IngredientInput{{ItemID: malt.ID, Amount: "4", WeightUnit: "kg", Use: "mash"}},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	recipe := decode[domain.RecipeView](t, w)
	assert.Equal(t, "23 l", recipe.BatchSize)
	assert.Equal(t, "4000 g", recipe.GrainBill)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Maris Otter", recipe.Ingredients[0].Name)

	w = do(t, s, request{path: "/api/recipes/" + recipe.ID + "?volume_unit=gal&weight_unit=kg"})
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[domain.RecipeView](t, w)
	assert.Equal(t, "6.08 gal", view.BatchSize)
	assert.Equal(t, "4 kg", view.Ingredients[0].Amount)

	w = do(t, s, request{path: "/api/recipes?q=bitter"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.RecipeView](t, w), 1)

	w = do(t, s, request{method: http.MethodDelete, path: "/api/inventory/" + malt.ID})
	assert.Equal(t, http.StatusConflict, w.Code, "items used by recipes cannot be deleted")

	w = do(t, s, request{method: http.MethodPost, path: "/api/recipes", body: domain.RecipeInput{
		Name:        "Broken",
		Ingredients: []domain.IngredientInput{{ItemID: malt.ID, Amount: "0"}},
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, request{method: http.MethodPut, path: "/api/recipes/" + recipe.ID, body: domain.RecipeInput{Name: "Best Bitter"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[domain.RecipeView](t, w).Ingredients)

	w = do(t, s, request{method: http.MethodDelete, path: "/api/recipes/" + recipe.ID})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, s, request{method: http.MethodDelete, path: "/api/recipes/" + recipe.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferencesEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	w := do(t, s, request{path: "/api/preferences/alice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g", string(decode[domain.Preferences](t, w).WeightUnit))

	w = do(t, s, request{method: http.MethodPut, path: "/api/preferences/alice", body: map[string]string{
		"weight_unit": "oz", "volume_unit": "gal", "color_scale": "srm",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "gal", string(decode[domain.Preferences](t, w).VolumeUnit))

	w = do(t, s, request{method: http.MethodPut, path: "/api/preferences/alice", body: map[string]string{"weight_unit": "stone"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	alice := map[string]string{UserHeader: "alice"}
	w = do(t, s, request{method: http.MethodPost, path: "/api/inventory", header: alice, body: map[string]string{
		"kind": "fermentable", "name": "Crystal 60", "amount": "1", "color": "60",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[domain.ItemView](t, w)
	assert.Equal(t, "1 oz", item.Amount, "input and display use alice's units")
	assert.Equal(t, "60.0", item.Color, "color input is in SRM for alice")

	w = do(t, s, request{path: "/api/inventory/" + item.ID})
	require.Equal(t, http.StatusOK, w.Code)
	anon := decode[domain.ItemView](t, w)
	assert.Equal(t, "28 g", anon.Amount)
	assert.Equal(t, "118.2", anon.Color)

	w = do(t, s, request{method: http.MethodDelete, path: "/api/preferences/alice"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, s, request{path: "/api/inventory/" + item.ID, header: alice})
	assert.Equal(t, "28 g", decode[domain.ItemView](t, w).Amount)
}
