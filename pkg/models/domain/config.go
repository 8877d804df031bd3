package domain

import (
	"maps"
	"slices"
)

// Key identifies a recognised deployment configuration variable.
type Key string

const (
	KeyLocation                Key = "LOCATION"
	KeyResourceGroup           Key = "RESOURCE_GROUP"
	KeyKeyVaultName            Key = "KEYVAULT_NAME"
	KeyAIServicesName          Key = "AI_SERVICES_NAME"
	KeyOpenAIServiceName       Key = "OPENAI_SERVICE_NAME"
	KeyCognitiveSearchName     Key = "COGNITIVE_SEARCH_NAME"
	KeyStorageAccountName      Key = "STORAGE_ACCOUNT_NAME"
	KeyContainerRegistryName   Key = "CONTAINER_REGISTRY_NAME"
	KeyLogWorkspaceName        Key = "LOG_WORKSPACE_NAME"
	KeyApplicationInsightsName Key = "APPLICATION_INSIGHTS_NAME"

	KeyEnvironment           Key = "ENVIRONMENT"
	KeyProjectName           Key = "PROJECT_NAME"
	KeyResourceOwner         Key = "RESOURCE_OWNER"
	KeyCostCenter            Key = "COST_CENTER"
	KeyAIServicesSKU         Key = "AI_SERVICES_SKU"
	KeyOpenAISKU             Key = "OPENAI_SKU"
	KeySearchSKU             Key = "SEARCH_SKU"
	KeyStorageSKU            Key = "STORAGE_SKU"
	KeyContainerRegistrySKU  Key = "CONTAINER_REGISTRY_SKU"
	KeyLogAnalyticsSKU       Key = "LOG_ANALYTICS_SKU"
	KeyEnableDiagnostics     Key = "ENABLE_DIAGNOSTICS"
	KeyEnableSoftDelete      Key = "ENABLE_SOFT_DELETE"
	KeyEnablePurgeProtection Key = "ENABLE_PURGE_PROTECTION"
	KeyNetworkAccess         Key = "NETWORK_ACCESS"
	KeyValidateDeployment    Key = "VALIDATE_DEPLOYMENT"
	KeyDryRun                Key = "DRY_RUN"
	KeyVerboseLogging        Key = "VERBOSE_LOGGING"
)

// RequiredKeys must be present and non-empty for a configuration to load.
var RequiredKeys = []Key{
	KeyLocation,
	KeyResourceGroup,
	KeyKeyVaultName,
	KeyAIServicesName,
	KeyOpenAIServiceName,
	KeyCognitiveSearchName,
	KeyStorageAccountName,
	KeyContainerRegistryName,
	KeyLogWorkspaceName,
	KeyApplicationInsightsName,
}

// OptionalKeys are loaded when present and non-empty.
var OptionalKeys = []Key{
	KeyEnvironment,
	KeyProjectName,
	KeyResourceOwner,
	KeyCostCenter,
	KeyAIServicesSKU,
	KeyOpenAISKU,
	KeySearchSKU,
	KeyStorageSKU,
	KeyContainerRegistrySKU,
	KeyLogAnalyticsSKU,
	KeyEnableDiagnostics,
	KeyEnableSoftDelete,
	KeyEnablePurgeProtection,
	KeyNetworkAccess,
	KeyValidateDeployment,
	KeyDryRun,
	KeyVerboseLogging,
}

// Configuration is the flat key/value mapping consumed by one validation run.
type Configuration map[Key]string

func (c Configuration) Get(key Key) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// Value returns the configured value or def when the key is absent.
func (c Configuration) Value(key Key, def string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

// Strings returns a copy keyed by plain strings.
func (c Configuration) Strings() map[string]string {
	out := make(map[string]string, len(c))
	for k, v := range c {
		out[string(k)] = v
	}
	return out
}

// Keys returns the configured keys in lexical order.
func (c Configuration) Keys() []Key {
	return slices.Sorted(maps.Keys(c))
}
