package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/logging"
	"github.com/de-tools/ai-foundry/pkg/metrics"
	"github.com/de-tools/ai-foundry/pkg/server"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
	"github.com/de-tools/ai-foundry/pkg/services/config"
	"github.com/de-tools/ai-foundry/pkg/services/validation"
)

var settingsPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the validation API for Azure AI Foundry environments",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "",
		"Path to a settings file; AIF_* environment variables take precedence")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(settings.Log, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to build rule catalog: %w", err)
	}
	logger.Info().Str("version", c.Version()).Int("regions", len(c.Regions())).Msg("rule catalog loaded")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Server.Addr,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			// requests never probe the host's Azure tooling
			Engine:  validation.NewEngine(c),
			Catalog: c,
			Metrics: metrics.NewValidation(),
		},
	})

	return webAPI.Start()
}
