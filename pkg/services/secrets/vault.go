package secrets

import (
	"context"
	"fmt"
	"path"

	vault "github.com/hashicorp/vault/api"
)

// VaultStore writes each secret to its own KV v2 entry under a base path,
// as {"value": ...}. VAULT_ADDR and VAULT_TOKEN are read from the environment.
type VaultStore struct {
	kv       *vault.KVv2
	basePath string
}

func NewVaultStore(mount, basePath string) (*VaultStore, error) {
	cfg := vault.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("vault env cfg: %w", cfg.Error)
	}
	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	return NewVaultStoreWithClient(client, mount, basePath), nil
}

func NewVaultStoreWithClient(client *vault.Client, mount, basePath string) *VaultStore {
	return &VaultStore{kv: client.KVv2(mount), basePath: basePath}
}

func (s *VaultStore) Name() string {
	return "vault"
}

func (s *VaultStore) Set(ctx context.Context, name, value string) error {
	p := path.Join(s.basePath, name)
	if _, err := s.kv.Put(ctx, p, map[string]interface{}{"value": value}); err != nil {
		return fmt.Errorf("vault put %s: %w", p, err)
	}
	return nil
}
