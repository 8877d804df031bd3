package store

import "time"

type DeploymentRun struct {
	RunID         string
	StartedAt     time.Time
	ResourceGroup string
	Location      string
	DryRun        bool
	Succeeded     bool
	Steps         []DeploymentStep
}

type DeploymentStep struct {
	Position int
	Resource string
	Name     string
	Type     string
	Status   string
	Error    *string
}
