package adapters

import (
	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/models/store"
)

func MapDeploymentSummaryDomainToStore(d *domain.DeploymentSummary) *store.DeploymentRun {
	run := &store.DeploymentRun{
		RunID:         d.RunID,
		StartedAt:     d.StartedAt,
		ResourceGroup: d.ResourceGroup,
		Location:      d.Location,
		DryRun:        d.DryRun,
		Succeeded:     d.Succeeded(),
	}
	for i, s := range d.Steps {
		step := store.DeploymentStep{
			Position: i,
			Resource: s.Resource.DisplayName,
			Name:     s.Resource.Name,
			Type:     s.Resource.ProviderType,
			Status:   string(s.Status),
		}
		if s.Err != nil {
			msg := s.Err.Error()
			step.Error = &msg
		}
		run.Steps = append(run.Steps, step)
	}
	return run
}

func MapStoreDeploymentRunToApi(r *store.DeploymentRun) api.DeploymentRun {
	out := api.DeploymentRun{
		RunID:         r.RunID,
		StartedAt:     r.StartedAt,
		ResourceGroup: r.ResourceGroup,
		Location:      r.Location,
		DryRun:        r.DryRun,
		Succeeded:     r.Succeeded,
		Steps:         []api.DeploymentStep{},
	}
	for _, s := range r.Steps {
		step := api.DeploymentStep{
			Resource: s.Resource,
			Name:     s.Name,
			Type:     s.Type,
			Status:   s.Status,
		}
		if s.Error != nil {
			step.Error = *s.Error
		}
		out.Steps = append(out.Steps, step)
	}
	return out
}
