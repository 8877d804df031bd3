package api

import "time"

type DeploymentRun struct {
	RunID         string           `json:"run_id" yaml:"run_id"`
	StartedAt     time.Time        `json:"started_at" yaml:"started_at"`
	ResourceGroup string           `json:"resource_group" yaml:"resource_group"`
	Location      string           `json:"location" yaml:"location"`
	DryRun        bool             `json:"dry_run" yaml:"dry_run"`
	Succeeded     bool             `json:"succeeded" yaml:"succeeded"`
	Steps         []DeploymentStep `json:"steps" yaml:"steps"`
}
