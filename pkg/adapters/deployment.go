package adapters

import (
	"maps"

	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

func MapDeploymentSummaryDomainToApi(d *domain.DeploymentSummary) api.DeploymentReport {
	report := api.DeploymentReport{
		RunID:     d.RunID,
		DryRun:    d.DryRun,
		Succeeded: d.Succeeded(),
		Steps:     []api.DeploymentStep{},
		Endpoints: map[string]string{},
	}
	maps.Copy(report.Endpoints, d.Endpoints)

	for _, s := range d.Steps {
		step := api.DeploymentStep{
			Resource: s.Resource.DisplayName,
			Name:     s.Resource.Name,
			Type:     s.Resource.ProviderType,
			Status:   string(s.Status),
		}
		if s.Err != nil {
			step.Error = s.Err.Error()
		}
		report.Steps = append(report.Steps, step)
	}
	return report
}
