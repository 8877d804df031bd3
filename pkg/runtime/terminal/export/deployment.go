package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/ai-foundry/pkg/adapters"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

const deploymentTemplate = `
Deployment {{.RunID}}{{if .DryRun}} (dry run){{end}}
{{range .Steps}}
- {{.Resource.DisplayName}}: {{.Resource.Name}} [{{.Status}}]{{if .Err}}
  {{.Err}}{{end}}{{end}}
{{if .Endpoints}}
Endpoints:
{{range $name, $url := .Endpoints}}  {{$name}}: {{$url}}
{{end}}{{end}}`

// DeploymentReporter prints provisioning summaries.
type DeploymentReporter struct {
	writer io.Writer
	format Format
}

func NewDeploymentReporter(writer io.Writer, format Format) *DeploymentReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &DeploymentReporter{writer: writer, format: format}
}

func (r *DeploymentReporter) Handle(summary *domain.DeploymentSummary) error {
	if r.format != FormatText {
		return Encode(r.writer, r.format, adapters.MapDeploymentSummaryDomainToApi(summary))
	}

	t, err := template.New("deployment").Parse(deploymentTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, summary)
}
