package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/export"
	"github.com/de-tools/ai-foundry/pkg/services/cost/azure/analyzers"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
)

type CostCmd struct {
	env           *Environment
	envFile       string
	resourceGroup string
	days          int
}

func NewCostCmd(env *Environment) *cobra.Command {
	cc := &CostCmd{env: env}
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Report actual spend of the deployment resource group",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.envFile, "env-file", envconfig.DefaultPath, "Path to the environment file")
	cmd.Flags().StringVar(&cc.resourceGroup, "resource-group", "", "Resource group to analyze (defaults to RESOURCE_GROUP from the env file)")
	cmd.Flags().IntVar(&cc.days, "days", 30, "Duration in days to analyze")

	return cmd
}

func (cc *CostCmd) run(cmd *cobra.Command, _ []string) error {
	if cc.days <= 0 {
		return fmt.Errorf("days must be positive, got %d", cc.days)
	}

	rg, err := cc.group()
	if err != nil {
		return err
	}

	target, err := cc.env.Azure.Target(cc.env.Settings)
	if err != nil {
		return fmt.Errorf("failed to resolve azure subscription: %w", err)
	}
	client, err := cc.env.Azure.CostClient(cc.env.Settings)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	analyzer := analyzers.NewResourceGroupAnalyzer(client, analyzers.AnalyzerConfig{
		SubscriptionID: target.SubscriptionID,
		ResourceGroup:  rg,
	})
	report, err := analyzer.GenerateReport(ctx, cc.days)
	if err != nil {
		return fmt.Errorf("failed to generate cost report: %w", err)
	}

	return export.NewCostReporter(cmd.OutOrStdout()).Handle(report)
}

func (cc *CostCmd) group() (string, error) {
	if cc.resourceGroup != "" {
		return cc.resourceGroup, nil
	}
	cfg, err := loadConfiguration(cc.envFile)
	if err != nil {
		return "", fmt.Errorf("no --resource-group given and the env file could not be loaded: %w", err)
	}
	rg, ok := cfg.Get(domain.KeyResourceGroup)
	if !ok {
		return "", errors.New("no resource group configured")
	}
	return rg, nil
}
