package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// HTMLFormatter produces a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"dash": orDash,
	"add":  func(i, j int) int { return i + j },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Items   []domain.ItemView
		Recipes []domain.RecipeView
		Summary Summary
	}{report, sortedItems(report.Items), sortedRecipes(report.Recipes), Summarize(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
