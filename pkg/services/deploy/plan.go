package deploy

import (
	"fmt"
	"strings"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

const (
	typeCognitiveAccount = "Microsoft.CognitiveServices/accounts"
	typeSearchService    = "Microsoft.Search/searchServices"
	typeKeyVault         = "Microsoft.KeyVault/vaults"
	typeStorageAccount   = "Microsoft.Storage/storageAccounts"
	typeContainerReg     = "Microsoft.ContainerRegistry/registries"
	typeLogWorkspace     = "Microsoft.OperationalInsights/workspaces"
	typeAppInsights      = "Microsoft.Insights/components"
)

var apiVersions = map[string]string{
	typeCognitiveAccount: "2023-05-01",
	typeSearchService:    "2023-11-01",
	typeKeyVault:         "2023-07-01",
	typeStorageAccount:   "2023-01-01",
	typeContainerReg:     "2023-07-01",
	typeLogWorkspace:     "2022-10-01",
	typeAppInsights:      "2020-02-02",
}

// Target identifies where the plan is deployed.
type Target struct {
	SubscriptionID string
	TenantID       string
}

func (t Target) resourceGroupID(rg string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", t.SubscriptionID, rg)
}

// ResourceID builds the ARM id of a resource in the plan's resource group.
func (t Target) ResourceID(rg string, spec domain.ResourceSpec) string {
	return fmt.Sprintf("%s/providers/%s/%s", t.resourceGroupID(rg), spec.ProviderType, spec.Name)
}

func flag(cfg domain.Configuration, key domain.Key, def bool) bool {
	v, ok := cfg.Get(key)
	if !ok {
		return def
	}
	return strings.EqualFold(v, "true")
}

func publicAccess(cfg domain.Configuration) string {
	if cfg.Value(domain.KeyNetworkAccess, "Public") == "Public" {
		return "Enabled"
	}
	return "Disabled"
}

// Tags are derived from the optional ownership keys. Empty keys are skipped.
func Tags(cfg domain.Configuration) map[string]string {
	tags := map[string]string{}
	for tag, key := range map[string]domain.Key{
		"environment": domain.KeyEnvironment,
		"project":     domain.KeyProjectName,
		"owner":       domain.KeyResourceOwner,
		"cost-center": domain.KeyCostCenter,
	} {
		if v, ok := cfg.Get(key); ok {
			tags[tag] = v
		}
	}
	return tags
}

// Plan lists the resources to ensure, in creation order, after the resource
// group. Log Analytics precedes Application Insights, which links to it.
func Plan(cfg domain.Configuration, target Target) ([]domain.ResourceSpec, error) {
	var missing []string
	for _, k := range domain.RequiredKeys {
		if _, ok := cfg.Get(k); !ok {
			missing = append(missing, string(k))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("configuration is missing %s", strings.Join(missing, ", "))
	}

	rg := cfg[domain.KeyResourceGroup]
	access := publicAccess(cfg)

	cognitive := func(display string, key domain.Key, kind string, skuKey domain.Key) domain.ResourceSpec {
		name := cfg[key]
		return domain.ResourceSpec{
			DisplayName:  display,
			Name:         name,
			ProviderType: typeCognitiveAccount,
			Kind:         kind,
			SKU:          cfg.Value(skuKey, "S0"),
			Properties: map[string]any{
				"customSubDomainName": name,
				"publicNetworkAccess": access,
			},
		}
	}

	logWorkspace := domain.ResourceSpec{
		DisplayName:  "Log Analytics",
		Name:         cfg[domain.KeyLogWorkspaceName],
		ProviderType: typeLogWorkspace,
		Properties: map[string]any{
			"sku":             map[string]any{"name": cfg.Value(domain.KeyLogAnalyticsSKU, "PerGB2018")},
			"retentionInDays": 30,
		},
	}

	vaultProps := map[string]any{
		"tenantId":                target.TenantID,
		"sku":                     map[string]any{"family": "A", "name": "standard"},
		"enableRbacAuthorization": true,
		"enableSoftDelete":        flag(cfg, domain.KeyEnableSoftDelete, true),
		"publicNetworkAccess":     access,
	}
	// Purge protection cannot be switched off once set, so it is only sent when enabled.
	if flag(cfg, domain.KeyEnablePurgeProtection, false) {
		vaultProps["enablePurgeProtection"] = true
	}

	specs := []domain.ResourceSpec{
		cognitive("General AI Services", domain.KeyAIServicesName, "AIServices", domain.KeyAIServicesSKU),
		cognitive("OpenAI Service", domain.KeyOpenAIServiceName, "OpenAI", domain.KeyOpenAISKU),
		{
			DisplayName:  "Cognitive Search",
			Name:         cfg[domain.KeyCognitiveSearchName],
			ProviderType: typeSearchService,
			SKU:          cfg.Value(domain.KeySearchSKU, "standard"),
			Properties: map[string]any{
				"replicaCount":        1,
				"partitionCount":      1,
				"publicNetworkAccess": strings.ToLower(access),
			},
		},
		{
			DisplayName:  "Key Vault",
			Name:         cfg[domain.KeyKeyVaultName],
			ProviderType: typeKeyVault,
			Properties:   vaultProps,
		},
		{
			DisplayName:  "Storage Account",
			Name:         cfg[domain.KeyStorageAccountName],
			ProviderType: typeStorageAccount,
			Kind:         "StorageV2",
			SKU:          cfg.Value(domain.KeyStorageSKU, "Standard_LRS"),
			Properties: map[string]any{
				"minimumTlsVersion":     "TLS1_2",
				"allowBlobPublicAccess": false,
				"publicNetworkAccess":   access,
			},
		},
		{
			DisplayName:  "Container Registry",
			Name:         cfg[domain.KeyContainerRegistryName],
			ProviderType: typeContainerReg,
			SKU:          cfg.Value(domain.KeyContainerRegistrySKU, "Basic"),
			Properties:   map[string]any{"adminUserEnabled": false},
		},
		logWorkspace,
		{
			DisplayName:  "Application Insights",
			Name:         cfg[domain.KeyApplicationInsightsName],
			ProviderType: typeAppInsights,
			Kind:         "web",
			Properties: map[string]any{
				"Application_Type":    "web",
				"WorkspaceResourceId": target.ResourceID(rg, logWorkspace),
			},
		},
	}

	for i := range specs {
		specs[i].APIVersion = apiVersions[specs[i].ProviderType]
	}
	return specs, nil
}

// Endpoints are the well-known service URLs of a configuration.
func Endpoints(cfg domain.Configuration) map[string]string {
	endpoints := map[string]string{}
	add := func(name string, key domain.Key, format string) {
		if v, ok := cfg.Get(key); ok {
			endpoints[name] = fmt.Sprintf(format, v)
		}
	}
	add("ai_foundry_project", domain.KeyAIServicesName, "https://%s.services.ai.azure.com/")
	add("ai_services", domain.KeyAIServicesName, "https://%s.cognitiveservices.azure.com/")
	add("openai", domain.KeyOpenAIServiceName, "https://%s.openai.azure.com/")
	add("search", domain.KeyCognitiveSearchName, "https://%s.search.windows.net/")
	add("key_vault", domain.KeyKeyVaultName, "https://%s.vault.azure.net/")
	add("storage_blob", domain.KeyStorageAccountName, "https://%s.blob.core.windows.net/")
	add("container_registry", domain.KeyContainerRegistryName, "%s.azurecr.io")
	return endpoints
}
