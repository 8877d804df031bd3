package deploy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

type Options struct {
	DryRun bool
}

// Orchestrator ensures every resource of the plan exists. Existing resources
// are left untouched and a failed step does not stop the following ones.
type Orchestrator struct {
	client ResourceClient
	target Target
	newID  func() string
	now    func() time.Time
}

func NewOrchestrator(client ResourceClient, target Target) *Orchestrator {
	return &Orchestrator{
		client: client,
		target: target,
		newID:  func() string { return uuid.NewString() },
		now:    time.Now,
	}
}

// Deploy returns an error only when no plan can be built.
func (o *Orchestrator) Deploy(ctx context.Context, cfg domain.Configuration, opts Options) (*domain.DeploymentSummary, error) {
	specs, err := Plan(cfg, o.target)
	if err != nil {
		return nil, err
	}

	summary := &domain.DeploymentSummary{
		RunID:         o.newID(),
		StartedAt:     o.now().UTC(),
		ResourceGroup: cfg[domain.KeyResourceGroup],
		Location:      cfg[domain.KeyLocation],
		DryRun:        opts.DryRun,
		Endpoints:     Endpoints(cfg),
	}
	logger := zerolog.Ctx(ctx).With().Str("run_id", summary.RunID).Bool("dry_run", opts.DryRun).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Int("resources", len(specs)+1).Msg("starting deployment")

	rg := summary.ResourceGroup
	location := summary.Location
	tags := Tags(cfg)

	group := domain.ResourceSpec{DisplayName: "Resource Group", Name: rg, ProviderType: "Microsoft.Resources/resourceGroups"}
	summary.Steps = append(summary.Steps, o.ensure(ctx, group, opts,
		func() (bool, error) { return o.client.GroupExists(ctx, rg) },
		func() error { return o.client.CreateGroup(ctx, rg, location, tags) },
	))

	for _, spec := range specs {
		id := o.target.ResourceID(rg, spec)
		summary.Steps = append(summary.Steps, o.ensure(ctx, spec, opts,
			func() (bool, error) { return o.client.Exists(ctx, id, spec) },
			func() error { return o.client.Create(ctx, id, location, spec, tags) },
		))
	}

	logger.Info().
		Int("created", len(summary.ByStatus(domain.StepCreated))).
		Int("existing", len(summary.ByStatus(domain.StepExisting))).
		Int("failed", len(summary.ByStatus(domain.StepFailed))).
		Msg("deployment finished")
	return summary, nil
}

func (o *Orchestrator) ensure(ctx context.Context, spec domain.ResourceSpec, opts Options, exists func() (bool, error), create func() error) domain.StepResult {
	logger := zerolog.Ctx(ctx).With().Str("resource", spec.DisplayName).Str("name", spec.Name).Logger()
	result := domain.StepResult{Resource: spec}

	found, err := exists()
	switch {
	case err != nil:
		result.Status, result.Err = domain.StepFailed, err
		logger.Error().Err(err).Msg("existence check failed")
	case found:
		result.Status = domain.StepExisting
		logger.Info().Msg("already exists, skipping")
	case opts.DryRun:
		result.Status = domain.StepPlanned
		logger.Info().Msg("would create")
	default:
		if err := create(); err != nil {
			result.Status, result.Err = domain.StepFailed, err
			logger.Error().Err(err).Msg("creation failed")
			break
		}
		result.Status = domain.StepCreated
		logger.Info().Msg("created")
	}
	return result
}
