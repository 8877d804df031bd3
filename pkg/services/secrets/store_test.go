package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	vault "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	fail   map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, fail: map[string]bool{}}
}

func (m *memoryStore) Name() string { return "memory" }

func (m *memoryStore) Set(_ context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[name] {
		return errors.New("forbidden")
	}
	m.values[name] = value
	return nil
}

func TestSecretName(t *testing.T) {
	tests := map[string]string{
		"OPENAI_SERVICE_NAME": "openai-service-name",
		"key_vault_endpoint":  "key-vault-endpoint",
		" Weird.Key! ":        "weirdkey",
		"__":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SecretName(in), in)
	}
}

func TestPersist_WritesNonEmptyValues(t *testing.T) {
	// Given
	store := newMemoryStore()
	values := map[string]string{
		"RESOURCE_GROUP": "rg-ai-contoso01",
		"LOCATION":       "eastus2",
		"COST_CENTER":    "  ",
	}

	// When
	result, err := Persist(context.Background(), store, values, 4)

	// Then
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 2, Skipped: 1}, result)
	assert.Equal(t, map[string]string{"resource-group": "rg-ai-contoso01", "location": "eastus2"}, store.values)
}

func TestPersist_ReportsEveryFailureAndKeepsGoing(t *testing.T) {
	store := newMemoryStore()
	store.fail["a"] = true
	store.fail["c"] = true

	result, err := Persist(context.Background(), store, map[string]string{"a": "1", "b": "2", "c": "3"}, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret a: forbidden")
	assert.Contains(t, err.Error(), "secret c: forbidden")
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, "2", store.values["b"])
}

type slowStore struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowStore) Name() string { return "slow" }

func (s *slowStore) Set(context.Context, string, string) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

func TestPersist_BoundsConcurrentWrites(t *testing.T) {
	// Given
	store := &slowStore{}
	values := map[string]string{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		values[k] = "v"
	}

	// When
	result, err := Persist(context.Background(), store, values, 2)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 8, result.Written)
	assert.LessOrEqual(t, store.peak.Load(), int32(2))
	assert.Zero(t, store.inFlight.Load())
}

func TestValues_IncludesEndpoints(t *testing.T) {
	cfg := domain.Configuration{domain.KeyKeyVaultName: "kv1"}

	got := Values(cfg, map[string]string{"key_vault": "https://kv1.vault.azure.net/"})

	assert.Equal(t, map[string]string{
		"keyvault-name":      "kv1",
		"key-vault-endpoint": "https://kv1.vault.azure.net/",
	}, got)
}

type mockSetter struct {
	mock.Mock
}

func (m *mockSetter) SetSecret(ctx context.Context, name string, params azsecrets.SetSecretParameters, opts *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error) {
	args := m.Called(ctx, name, params, opts)
	return azsecrets.SetSecretResponse{}, args.Error(0)
}

func TestKeyVaultStore_Set(t *testing.T) {
	setter := new(mockSetter)
	setter.On("SetSecret", mock.Anything, "openai-endpoint", mock.MatchedBy(func(p azsecrets.SetSecretParameters) bool {
		return p.Value != nil && *p.Value == "https://x.openai.azure.com/"
	}), mock.Anything).Return(nil)
	setter.On("SetSecret", mock.Anything, "broken", mock.Anything, mock.Anything).Return(errors.New("403"))
	store := &KeyVaultStore{vaultURL: VaultURL("kv1"), client: setter}

	require.NoError(t, store.Set(context.Background(), "openai-endpoint", "https://x.openai.azure.com/"))
	err := store.Set(context.Background(), "broken", "v")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://kv1.vault.azure.net/")
	setter.AssertExpectations(t)
}

func TestVaultStore_PutsEachSecretUnderBasePath(t *testing.T) {
	// Given
	var mu sync.Mutex
	received := map[string]map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Data map[string]any `json:"data"`
		}
		_ = json.Unmarshal(body, &payload)
		mu.Lock()
		received[r.Method+" "+r.URL.Path] = payload.Data
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"created_time":"2025-06-01T00:00:00Z","version":1}}`))
	}))
	defer srv.Close()

	cfg := vault.DefaultConfig()
	cfg.Address = srv.URL
	client, err := vault.NewClient(cfg)
	require.NoError(t, err)
	client.SetToken("test-token")
	store := NewVaultStoreWithClient(client, "secret", "ai-foundry")

	// When
	result, err := Persist(context.Background(), store, map[string]string{"LOCATION": "eastus2"}, 2)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, map[string]any{"value": "eastus2"}, received["PUT /v1/secret/data/ai-foundry/location"])
}
