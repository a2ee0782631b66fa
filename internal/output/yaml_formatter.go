package output

import (
	"gopkg.in/yaml.v3"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// YAMLFormatter serializes the report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.Report) ([]byte, error) {
	return yaml.Marshal(report)
}
