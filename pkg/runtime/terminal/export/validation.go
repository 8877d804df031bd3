package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/ai-foundry/pkg/adapters"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

const validationTemplate = `Azure AI Foundry Configuration Validation
{{rule}}
Validation Time: {{.Timestamp.Format "2006-01-02T15:04:05"}}
Variables Loaded: {{.TotalVariables}}
{{if .InfoMessages}}
Configuration Information:
{{range $i, $m := .InfoMessages}}   {{inc $i}}. {{$m}}
{{end}}{{end}}{{if .Warnings}}
{{len .Warnings}} Warning(s):
{{range $i, $m := .Warnings}}   {{inc $i}}. {{$m}}
{{end}}{{end}}{{if .Errors}}
{{len .Errors}} Error(s) found:
{{range $i, $m := .Errors}}   {{inc $i}}. {{$m}}
{{end}}{{end}}
{{if .IsValid}}{{if .Warnings}}Configuration is valid with warnings noted above.
Address warnings before production deployment.
{{else}}Configuration validation passed successfully!
Ready for Azure infrastructure deployment.
{{end}}{{else}}Configuration validation failed!
Please fix the errors above before proceeding.
{{end}}
Next Steps:
{{if .IsValid}}   1. Review and address any warnings
   2. Run: aif deploy --dry-run
   3. If dry-run succeeds: aif deploy
{{else}}   1. Fix configuration errors in the env file
   2. Re-run: aif validate
{{end}}`

// ValidationReporter renders validation summaries for the console or for
// machines.
type ValidationReporter struct {
	writer  io.Writer
	format  Format
	verbose bool
	tmpl    *template.Template
}

func NewValidationReporter(writer io.Writer, format Format, verbose bool) (*ValidationReporter, error) {
	if writer == nil {
		writer = os.Stdout
	}
	tmpl, err := template.New("validation").Funcs(template.FuncMap{
		"inc":  func(i int) int { return i + 1 },
		"rule": func() string { return strings.Repeat("=", 70) },
	}).Parse(validationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &ValidationReporter{writer: writer, format: format, verbose: verbose, tmpl: tmpl}, nil
}

func (r *ValidationReporter) Handle(summary *domain.ValidationSummary) error {
	if r.format == FormatText {
		return r.tmpl.Execute(r.writer, summary)
	}
	return Encode(r.writer, r.format, adapters.MapValidationSummaryDomainToApi(summary, r.verbose))
}
