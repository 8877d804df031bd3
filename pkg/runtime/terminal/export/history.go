package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/ai-foundry/pkg/adapters"
	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/store"
)

const historyTemplate = `{{if not .}}No deployment runs recorded.
{{end}}{{range .}}{{.StartedAt.Format "2006-01-02 15:04:05"}}  {{.RunID}}  {{.ResourceGroup}} ({{.Location}})  {{outcome .}}
{{range .Steps}}{{if .Error}}    {{.Resource}}: {{.Error}}
{{end}}{{end}}{{end}}`

// HistoryReporter lists recorded deployment runs.
type HistoryReporter struct {
	writer io.Writer
	format Format
}

func NewHistoryReporter(writer io.Writer, format Format) *HistoryReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &HistoryReporter{writer: writer, format: format}
}

func (r *HistoryReporter) Handle(runs []*store.DeploymentRun) error {
	out := make([]api.DeploymentRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, adapters.MapStoreDeploymentRunToApi(run))
	}
	if r.format != FormatText {
		return Encode(r.writer, r.format, out)
	}

	t, err := template.New("history").Funcs(template.FuncMap{
		"outcome": func(run api.DeploymentRun) string {
			switch {
			case run.DryRun:
				return "dry run"
			case run.Succeeded:
				return "succeeded"
			default:
				return "failed"
			}
		},
	}).Parse(historyTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, out)
}
