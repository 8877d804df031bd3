package api

type DeploymentStep struct {
	Resource string `json:"resource" yaml:"resource"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Status   string `json:"status" yaml:"status"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

type DeploymentReport struct {
	RunID     string            `json:"run_id" yaml:"run_id"`
	DryRun    bool              `json:"dry_run" yaml:"dry_run"`
	Succeeded bool              `json:"succeeded" yaml:"succeeded"`
	Steps     []DeploymentStep  `json:"steps" yaml:"steps"`
	Endpoints map[string]string `json:"endpoints" yaml:"endpoints"`
}
