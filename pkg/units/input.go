package units

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input is a raw quantity as typed by a user. It decodes from JSON or YAML
// numbers as well as strings, and is parsed with ParseAmount.
type Input string

// Amount parses the input; see ParseAmount.
func (in Input) Amount() decimal.NullDecimal {
	return ParseAmount(string(in))
}

// IsBlank reports whether nothing was entered.
func (in Input) IsBlank() bool {
	return strings.TrimSpace(string(in)) == ""
}

// UnmarshalJSON accepts a JSON string, number or null.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*in = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Input(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a string or number: %w", err)
	}
	*in = Input(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (in *Input) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("quantity must be a scalar, got %v at line %d", value.Tag, value.Line)
	}
	if value.Tag == "!!null" {
		*in = ""
		return nil
	}
	*in = Input(value.Value)
	return nil
}
