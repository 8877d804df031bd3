package secrets

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

type secretSetter interface {
	SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error)
}

// KeyVaultStore writes secrets to an Azure Key Vault.
type KeyVaultStore struct {
	vaultURL string
	client   secretSetter
}

func VaultURL(name string) string {
	return fmt.Sprintf("https://%s.vault.azure.net/", name)
}

func NewKeyVaultStore(vaultName string, cred azcore.TokenCredential) (*KeyVaultStore, error) {
	url := VaultURL(vaultName)
	client, err := azsecrets.NewClient(url, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create key vault client for %s: %w", url, err)
	}
	return &KeyVaultStore{vaultURL: url, client: client}, nil
}

func (s *KeyVaultStore) Name() string {
	return "keyvault"
}

func (s *KeyVaultStore) Set(ctx context.Context, name, value string) error {
	_, err := s.client.SetSecret(ctx, name, azsecrets.SetSecretParameters{
		Value:       to.Ptr(value),
		ContentType: to.Ptr("text/plain"),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to set secret in %s: %w", s.vaultURL, err)
	}
	return nil
}
