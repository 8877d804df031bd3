package domain

import "time"

// ResourceSpec describes one Azure resource the provisioning plan ensures.
type ResourceSpec struct {
	DisplayName  string         // "OpenAI Service"
	Name         string         // openai-contoso01
	ProviderType string         // Microsoft.CognitiveServices/accounts
	APIVersion   string         // 2023-05-01
	Kind         string         // OpenAI
	SKU          string         // S0
	Properties   map[string]any // provider specific body
}

type StepStatus string

const (
	StepCreated  StepStatus = "created"
	StepExisting StepStatus = "existing"
	StepPlanned  StepStatus = "would_create"
	StepFailed   StepStatus = "failed"
)

type StepResult struct {
	Resource ResourceSpec
	Status   StepStatus
	Err      error
}

// DeploymentSummary is the outcome of one provisioning run.
type DeploymentSummary struct {
	RunID         string
	StartedAt     time.Time
	ResourceGroup string
	Location      string
	DryRun        bool
	Steps         []StepResult
	Endpoints     map[string]string
}

func (d *DeploymentSummary) Succeeded() bool {
	for _, s := range d.Steps {
		if s.Status == StepFailed {
			return false
		}
	}
	return true
}

func (d *DeploymentSummary) ByStatus(status StepStatus) []StepResult {
	var out []StepResult
	for _, s := range d.Steps {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}
