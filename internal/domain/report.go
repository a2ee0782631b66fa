package domain

import "time"

// Report is the input to every output formatter.
type Report struct {
	Title       string       `json:"title" yaml:"title"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Preferences Preferences  `json:"preferences" yaml:"preferences"`
	Items       []ItemView   `json:"items,omitempty" yaml:"items,omitempty"`
	Recipes     []RecipeView `json:"recipes,omitempty" yaml:"recipes,omitempty"`
}
