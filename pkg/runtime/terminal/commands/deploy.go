package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/adapters"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/export"
	"github.com/de-tools/ai-foundry/pkg/services/deploy"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
	"github.com/de-tools/ai-foundry/pkg/services/secrets"
)

type DeployCmd struct {
	env            *Environment
	envFile        string
	dryRun         bool
	configOnly     bool
	skipValidation bool
	output         string
}

func NewDeployCmd(env *Environment) *cobra.Command {
	dc := &DeployCmd{env: env}
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create the Azure AI Foundry resources described by an environment file",
		Long: "Creates every missing resource and leaves existing ones untouched, then stores\n" +
			"configuration values and endpoints in the configured secret backend.",
		RunE: dc.run,
	}

	cmd.Flags().StringVar(&dc.envFile, "env-file", envconfig.DefaultPath, "Path to the environment file")
	cmd.Flags().BoolVar(&dc.dryRun, "dry-run", false, "Report what would be created without changing anything")
	cmd.Flags().BoolVar(&dc.configOnly, "config-only", false, "Only refresh the stored secrets")
	cmd.Flags().BoolVar(&dc.skipValidation, "skip-validation", false, "Deploy even when validation reports errors")
	cmd.Flags().StringVarP(&dc.output, "output", "o", string(export.FormatText), "Output format: text, json or yaml")

	return cmd
}

func (dc *DeployCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	format, err := export.ParseFormat(dc.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration(dc.envFile)
	if err != nil {
		logger.Debug().Err(err).Str("path", dc.envFile).Msg("configuration could not be loaded")
		engine, engineErr := dc.env.engine(false)
		if engineErr != nil {
			return engineErr
		}
		return dc.reject(cmd, format, engine.LoadFailure(err))
	}
	dryRun := dc.dryRun || strings.EqualFold(cfg.Value(domain.KeyDryRun, "false"), "true")

	if !dc.skipValidation {
		engine, err := dc.env.engine(true)
		if err != nil {
			return fmt.Errorf("failed to set up tooling probe: %w", err)
		}
		summary := engine.Validate(ctx, cfg)
		if !summary.IsValid {
			return dc.reject(cmd, format, summary)
		}
		logger.Info().Int("warnings", len(summary.Warnings)).Msg("configuration validated")
	}

	if dc.configOnly {
		return dc.storeSecrets(cmd, cfg, deploy.Endpoints(cfg), dryRun)
	}

	target, err := dc.env.Azure.Target(dc.env.Settings)
	if err != nil {
		return fmt.Errorf("failed to resolve azure subscription: %w", err)
	}
	client, err := dc.env.Azure.ResourceClient(dc.env.Settings, target)
	if err != nil {
		return err
	}

	summary, err := deploy.NewOrchestrator(client, target).Deploy(ctx, cfg, deploy.Options{DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("failed to deploy: %w", err)
	}
	dc.record(cmd, summary)
	if err := export.NewDeploymentReporter(cmd.OutOrStdout(), format).Handle(summary); err != nil {
		return err
	}

	if !summary.Succeeded() {
		return fmt.Errorf("deployment %s finished with %d failed step(s)", summary.RunID, len(summary.ByStatus(domain.StepFailed)))
	}
	return dc.storeSecrets(cmd, cfg, summary.Endpoints, dryRun)
}

// reject prints the validation report and stops the deployment.
func (dc *DeployCmd) reject(cmd *cobra.Command, format export.Format, summary *domain.ValidationSummary) error {
	reporter, err := export.NewValidationReporter(cmd.OutOrStdout(), format, false)
	if err != nil {
		return err
	}
	if err := reporter.Handle(summary); err != nil {
		return err
	}
	return ErrInvalidConfiguration
}

// record keeps the run in the local history. Failures are logged only.
func (dc *DeployCmd) record(cmd *cobra.Command, summary *domain.DeploymentSummary) {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	store, closer, err := dc.env.history(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("deployment history unavailable")
		return
	}
	if store == nil {
		return
	}
	defer closer.Close()

	if err := store.RecordRun(ctx, adapters.MapDeploymentSummaryDomainToStore(summary)); err != nil {
		logger.Warn().Err(err).Str("run_id", summary.RunID).Msg("failed to record deployment run")
	}
}

func (dc *DeployCmd) storeSecrets(cmd *cobra.Command, cfg domain.Configuration, endpoints map[string]string, dryRun bool) error {
	ctx := cmd.Context()
	values := secrets.Values(cfg, endpoints)

	if dryRun {
		zerolog.Ctx(ctx).Info().Int("secrets", len(values)).Msg("dry run: secrets not stored")
		return nil
	}

	store, err := dc.env.Azure.SecretStore(dc.env.Settings, cfg[domain.KeyKeyVaultName])
	if err != nil {
		return err
	}
	result, err := secrets.Persist(ctx, store, values, dc.env.Settings.Secrets.Concurrency)
	fmt.Fprintf(cmd.ErrOrStderr(), "Stored %d secret(s) in %s\n", result.Written, store.Name())
	if err != nil {
		return fmt.Errorf("failed to store secrets: %w", err)
	}
	return nil
}
