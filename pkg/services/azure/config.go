package azure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const (
	DefaultProfile  = "defaults"
	DefaultLocation = "eastus"
)

// Config is the subset of the Azure CLI profile the tool needs to reach ARM.
type Config struct {
	SubscriptionID string
	TenantID       string
	ResourceGroup  string
	Location       string
}

// Overrides are applied on top of the profile. Empty fields keep the profile value.
type Overrides struct {
	SubscriptionID string
	TenantID       string
}

// DefaultConfigPath points at the Azure CLI config, honouring AZURE_CONFIG_DIR.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("AZURE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".azure", "config"), nil
}

// LoadConfig reads one section of an ini-formatted Azure CLI config. A missing
// file is tolerated when the overrides carry a subscription.
func LoadConfig(path, profile string, overrides Overrides) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	config := &Config{Location: DefaultLocation}

	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}
	if section, err := cfg.GetSection(profile); err == nil {
		config.SubscriptionID = section.Key("subscription").String()
		config.TenantID = section.Key("tenant").String()
		config.ResourceGroup = section.Key("group").String()
		config.Location = section.Key("location").MustString(DefaultLocation)
	}

	if overrides.SubscriptionID != "" {
		config.SubscriptionID = overrides.SubscriptionID
	}
	if overrides.TenantID != "" {
		config.TenantID = overrides.TenantID
	}

	if config.SubscriptionID == "" {
		return nil, fmt.Errorf("subscription ID not found in profile %s", profile)
	}
	return config, nil
}

// NewCredential returns a token credential backed by the logged-in Azure CLI.
func NewCredential(tenantID string) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	return cred, nil
}
