package units

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInput_DecodesStringsAndNumbers(t *testing.T) {
	var payload struct {
		A Input `json:"a" yaml:"a"`
		B Input `json:"b" yaml:"b"`
		C Input `json:"c" yaml:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a": 2.5, "b": "2,5", "c": null}`), &payload))
	assert.Equal(t, Input("2.5"), payload.A)
	assert.Equal(t, Input("2,5"), payload.B)
	assert.True(t, payload.C.IsBlank())
	assert.Equal(t, payload.A.Amount(), payload.B.Amount())

	require.NoError(t, yaml.Unmarshal([]byte("a: 7\nb: '1,25'\nc: ~\n"), &payload))
	assert.Equal(t, Input("7"), payload.A)
	assert.Equal(t, "1.25", payload.B.Amount().Decimal.String())
	assert.True(t, payload.C.IsBlank())
}

func TestInput_RejectsObjects(t *testing.T) {
	var in Input
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &in))
	assert.Error(t, yaml.Unmarshal([]byte("[1, 2]"), &in))
}
