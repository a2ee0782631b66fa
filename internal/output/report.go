package output

import (
	"time"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// NewReport assembles a report stamped with the current time.
func NewReport(title string, prefs domain.Preferences, items []domain.ItemView, recipes []domain.RecipeView) *domain.Report {
	return &domain.Report{
		Title:       title,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Preferences: prefs.WithDefaults(),
		Items:       items,
		Recipes:     recipes,
	}
}

// GenerateReport writes report in format to a timestamped file in dir and
// returns the file name.
func GenerateReport(report *domain.Report, format, dir string) (string, error) {
	f, err := GetFormatterByName(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir)
}
