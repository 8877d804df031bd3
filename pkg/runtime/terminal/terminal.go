package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/logging"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/commands"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
	"github.com/de-tools/ai-foundry/pkg/services/config"
)

// CLI represents the command-line interface
type CLI struct {
	env          *commands.Environment
	rootCmd      *cobra.Command
	settingsPath string
	logCloser    io.Closer
}

// Options contain configuration for the CLI
type Options struct {
	Output  io.Writer
	Catalog *catalog.Catalog
	// Azure defaults to the Azure CLI profile and credential.
	Azure commands.AzureProvider
	// OpenHistory defaults to the sqlite file named in the settings.
	OpenHistory commands.HistoryOpener
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.MustDefault()
	}
	if opts.Azure == nil {
		opts.Azure = azureProvider{}
	}
	if opts.OpenHistory == nil {
		opts.OpenHistory = openHistory
	}

	cli := &CLI{
		env: &commands.Environment{
			Catalog:     opts.Catalog,
			Azure:       opts.Azure,
			OpenHistory: opts.OpenHistory,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	defer func() {
		if cli.logCloser != nil {
			_ = cli.logCloser.Close()
		}
	}()
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "aif",
		Short:             "Azure AI Foundry environment tooling",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVar(&cli.settingsPath, "settings", "",
		"Path to a settings file (yaml, json or toml); AIF_* environment variables take precedence")

	cmd.AddCommand(commands.NewValidateCmd(cli.env))
	cmd.AddCommand(commands.NewDeployCmd(cli.env))
	cmd.AddCommand(commands.NewSecretsCmd(cli.env))
	cmd.AddCommand(commands.NewCostCmd(cli.env))
	cmd.AddCommand(commands.NewCatalogCmd(cli.env))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(cli.settingsPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(settings.Log, false)
	if err != nil {
		return err
	}
	cli.logCloser = closer

	cmd.SetContext(logger.WithContext(cmd.Context()))
	cli.env.Settings = settings
	return nil
}
