package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
	"github.com/de-tools/ai-foundry/pkg/services/config"
	"github.com/de-tools/ai-foundry/pkg/services/cost/azure/analyzers"
	"github.com/de-tools/ai-foundry/pkg/services/deploy"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
	"github.com/de-tools/ai-foundry/pkg/services/secrets"
	"github.com/de-tools/ai-foundry/pkg/services/validation"
	"github.com/de-tools/ai-foundry/pkg/store/history"
)

// ErrInvalidConfiguration makes the process exit with status 1 after the
// report has been printed.
var ErrInvalidConfiguration = errors.New("configuration is invalid")

// AzureProvider builds the clients that talk to Azure or local tooling.
type AzureProvider interface {
	Probe(s *config.Settings) (validation.ToolProbe, error)
	Target(s *config.Settings) (deploy.Target, error)
	ResourceClient(s *config.Settings, target deploy.Target) (deploy.ResourceClient, error)
	SecretStore(s *config.Settings, vaultName string) (secrets.Store, error)
	CostClient(s *config.Settings) (analyzers.QueryClient, error)
}

// HistoryOpener returns a nil store when recording is turned off.
type HistoryOpener func(ctx context.Context, s *config.Settings) (history.Store, io.Closer, error)

// Environment is shared by every command. Settings is filled in before any
// command runs.
type Environment struct {
	Settings    *config.Settings
	Catalog     *catalog.Catalog
	Azure       AzureProvider
	OpenHistory HistoryOpener
}

// loadConfiguration reads the env file. Keys missing from the file fall back
// to the process environment.
func loadConfiguration(path string) (domain.Configuration, error) {
	return envconfig.NewLoader(envconfig.WithLookup(os.LookupEnv)).Load(path)
}

func (e *Environment) engine(withProbe bool) (*validation.Engine, error) {
	opts := []validation.Option{validation.WithProbeTimeout(e.Settings.Probe.Timeout)}
	if withProbe {
		p, err := e.Azure.Probe(e.Settings)
		if err != nil {
			return nil, err
		}
		if p != nil {
			opts = append(opts, validation.WithProbe(p))
		}
	}
	return validation.NewEngine(e.Catalog, opts...), nil
}

func (e *Environment) history(ctx context.Context) (history.Store, io.Closer, error) {
	if e.OpenHistory == nil {
		return nil, nil, nil
	}
	return e.OpenHistory(ctx, e.Settings)
}
