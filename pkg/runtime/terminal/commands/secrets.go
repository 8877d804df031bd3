package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/deploy"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
	"github.com/de-tools/ai-foundry/pkg/services/secrets"
)

type SecretsCmd struct {
	env     *Environment
	envFile string
	list    bool
}

func NewSecretsCmd(env *Environment) *cobra.Command {
	sc := &SecretsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Store configuration values and service endpoints in the secret backend",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.envFile, "env-file", envconfig.DefaultPath, "Path to the environment file")
	cmd.Flags().BoolVar(&sc.list, "list", false, "Print the secret names instead of storing them")

	return cmd
}

func (sc *SecretsCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration(sc.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	values := secrets.Values(cfg, deploy.Endpoints(cfg))

	if sc.list {
		for _, name := range slices.Sorted(maps.Keys(values)) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	store, err := sc.env.Azure.SecretStore(sc.env.Settings, cfg[domain.KeyKeyVaultName])
	if err != nil {
		return err
	}
	result, err := secrets.Persist(cmd.Context(), store, values, sc.env.Settings.Secrets.Concurrency)
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d secret(s) in %s, skipped %d\n", result.Written, store.Name(), result.Skipped)
	if err != nil {
		return fmt.Errorf("failed to store secrets: %w", err)
	}
	return nil
}
