package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/export"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
)

type ValidateCmd struct {
	env        *Environment
	envFile    string
	verbose    bool
	jsonOutput bool
	output     string
	noProbe    bool
}

func NewValidateCmd(env *Environment) *cobra.Command {
	vc := &ValidateCmd{env: env}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an Azure AI Foundry environment file",
		Long: "Checks resource names, region availability, SKUs, flags and local Azure tooling.\n" +
			"Exits with status 1 when the configuration has errors.",
		RunE: vc.run,
	}

	cmd.Flags().StringVar(&vc.envFile, "env-file", envconfig.DefaultPath, "Path to the environment file")
	cmd.Flags().BoolVarP(&vc.verbose, "verbose", "v", false, "Log every check and include the configuration in structured output")
	cmd.Flags().BoolVar(&vc.jsonOutput, "json-output", false, "Shorthand for --output json")
	cmd.Flags().StringVarP(&vc.output, "output", "o", string(export.FormatText), "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&vc.noProbe, "skip-tooling", false, "Do not probe the local Azure CLI")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if vc.verbose {
		logger := zerolog.Ctx(ctx).Level(zerolog.DebugLevel)
		ctx = logger.WithContext(ctx)
	}

	format, err := export.ParseFormat(vc.output)
	if err != nil {
		return err
	}
	if vc.jsonOutput {
		format = export.FormatJSON
	}
	reporter, err := export.NewValidationReporter(cmd.OutOrStdout(), format, vc.verbose)
	if err != nil {
		return err
	}

	engine, err := vc.env.engine(!vc.noProbe)
	if err != nil {
		return fmt.Errorf("failed to set up tooling probe: %w", err)
	}

	var summary *domain.ValidationSummary
	cfg, err := loadConfiguration(vc.envFile)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", vc.envFile).Msg("configuration could not be loaded")
		summary = engine.LoadFailure(err)
	} else {
		summary = engine.Validate(ctx, cfg)
	}

	if err := reporter.Handle(summary); err != nil {
		return err
	}
	if !summary.IsValid {
		return ErrInvalidConfiguration
	}
	return nil
}
