package terminal

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/de-tools/ai-foundry/pkg/services/azure"
	"github.com/de-tools/ai-foundry/pkg/services/config"
	"github.com/de-tools/ai-foundry/pkg/services/cost/azure/analyzers"
	"github.com/de-tools/ai-foundry/pkg/services/deploy"
	"github.com/de-tools/ai-foundry/pkg/services/probe"
	"github.com/de-tools/ai-foundry/pkg/services/secrets"
	"github.com/de-tools/ai-foundry/pkg/services/validation"
)

// azureProvider resolves Azure access from the CLI profile and the logged-in
// Azure CLI credential.
type azureProvider struct{}

func (azureProvider) config(s *config.Settings) (*azure.Config, error) {
	path := s.Azure.ConfigPath
	if path == "" {
		var err error
		if path, err = azure.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	return azure.LoadConfig(path, s.Azure.Profile, azure.Overrides{
		SubscriptionID: s.Azure.SubscriptionID,
		TenantID:       s.Azure.TenantID,
	})
}

func (azureProvider) credential(s *config.Settings) (azcore.TokenCredential, error) {
	return azure.NewCredential(s.Azure.TenantID)
}

func (p azureProvider) Probe(s *config.Settings) (validation.ToolProbe, error) {
	switch s.Probe.Mode {
	case config.ProbeModeNone:
		return nil, nil
	case config.ProbeModeCredential:
		cred, err := p.credential(s)
		if err != nil {
			return nil, err
		}
		return probe.NewCredentialProbe(cred, s.Azure.SubscriptionID, s.Azure.TenantID), nil
	default:
		return probe.NewCLIProbe(s.Probe.Command, probe.ExecRunner), nil
	}
}

func (p azureProvider) Target(s *config.Settings) (deploy.Target, error) {
	cfg, err := p.config(s)
	if err != nil {
		return deploy.Target{}, err
	}
	return deploy.Target{SubscriptionID: cfg.SubscriptionID, TenantID: cfg.TenantID}, nil
}

func (p azureProvider) ResourceClient(s *config.Settings, target deploy.Target) (deploy.ResourceClient, error) {
	cred, err := p.credential(s)
	if err != nil {
		return nil, err
	}
	return deploy.NewARMClient(target.SubscriptionID, cred)
}

func (p azureProvider) SecretStore(s *config.Settings, vaultName string) (secrets.Store, error) {
	switch s.Secrets.Backend {
	case config.SecretsBackendVault:
		return secrets.NewVaultStore(s.Secrets.VaultMount, s.Secrets.VaultPath)
	case config.SecretsBackendKeyVault:
		if vaultName == "" {
			return nil, errors.New("key vault backend needs a vault name")
		}
		cred, err := p.credential(s)
		if err != nil {
			return nil, err
		}
		return secrets.NewKeyVaultStore(vaultName, cred)
	default:
		return nil, fmt.Errorf("unsupported secrets backend %q", s.Secrets.Backend)
	}
}

func (p azureProvider) CostClient(s *config.Settings) (analyzers.QueryClient, error) {
	cred, err := p.credential(s)
	if err != nil {
		return nil, err
	}
	return analyzers.NewQueryClient(cred)
}
