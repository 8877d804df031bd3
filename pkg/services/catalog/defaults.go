package catalog

import "github.com/de-tools/ai-foundry/pkg/models/domain"

func defaultDefinitions() Definitions {
	return Definitions{
		Version: Version,
		Naming:  namingDefinitions(),
		Regions: regionDefinitions(),
		Skus:    skuDefinitions(),
		Booleans: []domain.Key{
			domain.KeyEnableDiagnostics,
			domain.KeyEnableSoftDelete,
			domain.KeyEnablePurgeProtection,
			domain.KeyValidateDeployment,
			domain.KeyDryRun,
			domain.KeyVerboseLogging,
		},
		NetworkAccess: []string{"Public", "Private", "Restricted"},
		EmailPattern:  `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
	}
}

func namingDefinitions() []NamingDefinition {
	return []NamingDefinition{
		{
			Key:         domain.KeyKeyVaultName,
			Pattern:     `^[a-zA-Z][a-zA-Z0-9-]{1,22}[a-zA-Z0-9]$`,
			MinLength:   3,
			MaxLength:   24,
			Scope:       domain.ScopeGlobal,
			Description: "Key Vault name",
			Restrictions: []string{
				"Must start with letter",
				"Cannot end with hyphen",
				"Cannot have consecutive hyphens",
				"Alphanumeric and hyphens only",
			},
		},
		{
			Key:         domain.KeyStorageAccountName,
			Pattern:     `^[a-z0-9]{3,24}$`,
			MinLength:   3,
			MaxLength:   24,
			Scope:       domain.ScopeGlobal,
			Description: "Storage Account name",
			Restrictions: []string{
				"Lowercase letters and numbers only",
				"No hyphens or special characters",
				"No uppercase letters",
			},
		},
		{
			Key:         domain.KeyContainerRegistryName,
			Pattern:     `^[a-zA-Z][a-zA-Z0-9]{4,49}$`,
			MinLength:   5,
			MaxLength:   50,
			Scope:       domain.ScopeGlobal,
			Description: "Container Registry name",
			Restrictions: []string{
				"Must start with letter",
				"Alphanumeric only (no hyphens)",
				"Cannot start with number",
			},
		},
		{
			Key:         domain.KeyCognitiveSearchName,
			Pattern:     `^[a-z0-9][a-z0-9-]{0,58}[a-z0-9]$`,
			MinLength:   2,
			MaxLength:   60,
			Scope:       domain.ScopeGlobal,
			Description: "Cognitive Search service name",
			Restrictions: []string{
				"Lowercase letters, numbers, and hyphens only",
				"Cannot start or end with hyphen",
				"Cannot have consecutive hyphens",
			},
		},
		{
			Key:         domain.KeyAIServicesName,
			Pattern:     `^[a-zA-Z0-9][a-zA-Z0-9-]{0,62}[a-zA-Z0-9]$`,
			MinLength:   2,
			MaxLength:   64,
			Scope:       domain.ScopeResourceGroup,
			Description: "AI Services account name",
			Restrictions: []string{
				"Cannot start or end with hyphen",
				"Alphanumeric and hyphens only",
			},
		},
		{
			Key:         domain.KeyOpenAIServiceName,
			Pattern:     `^[a-zA-Z0-9][a-zA-Z0-9-]{0,62}[a-zA-Z0-9]$`,
			MinLength:   2,
			MaxLength:   64,
			Scope:       domain.ScopeResourceGroup,
			Description: "OpenAI service name",
			Restrictions: []string{
				"Cannot start or end with hyphen",
				"Alphanumeric and hyphens only",
			},
		},
		{
			Key:         domain.KeyLogWorkspaceName,
			Pattern:     `^[a-zA-Z0-9][a-zA-Z0-9-]{2,61}[a-zA-Z0-9]$`,
			MinLength:   4,
			MaxLength:   63,
			Scope:       domain.ScopeResourceGroup,
			Description: "Log Analytics workspace name",
			Restrictions: []string{
				"Cannot start or end with hyphen",
				"Alphanumeric and hyphens only",
			},
		},
		{
			Key:         domain.KeyApplicationInsightsName,
			Pattern:     `^[a-zA-Z0-9][a-zA-Z0-9_().\-]{0,258}[a-zA-Z0-9]$`,
			MinLength:   1,
			MaxLength:   260,
			Scope:       domain.ScopeResourceGroup,
			Description: "Application Insights component name",
			Restrictions: []string{
				"Most characters allowed",
				`Cannot contain: <, >, %, &, \, ?, /, control characters`,
			},
		},
		{
			Key:         domain.KeyResourceGroup,
			Pattern:     `^[a-zA-Z0-9][a-zA-Z0-9_.()\-]{0,88}[a-zA-Z0-9]$`,
			MinLength:   1,
			MaxLength:   90,
			Scope:       domain.ScopeSubscription,
			Description: "Resource Group name",
			Restrictions: []string{
				"Cannot end with period",
				"Alphanumeric, underscore, parentheses, hyphen, period allowed",
			},
		},
	}
}

func region(code string, aiServices, openai, search bool) domain.RegionCapability {
	return domain.RegionCapability{
		Region: code,
		Capabilities: map[domain.Capability]bool{
			domain.CapabilityAIServices: aiServices,
			domain.CapabilityOpenAI:     openai,
			domain.CapabilitySearch:     search,
		},
	}
}

func regionDefinitions() []domain.RegionCapability {
	return []domain.RegionCapability{
		region("eastus", true, true, true),
		region("eastus2", true, true, true),
		region("westus", true, true, true),
		region("westus2", true, true, true),
		region("westus3", true, false, true),
		region("centralus", true, true, true),
		region("northcentralus", true, false, true),
		region("southcentralus", true, true, true),
		region("westcentralus", true, false, true),
		region("canadacentral", true, true, true),
		region("canadaeast", true, false, true),
		region("brazilsouth", true, false, true),
		region("northeurope", true, true, true),
		region("westeurope", true, true, true),
		region("francecentral", true, true, true),
		region("germanywestcentral", true, false, true),
		region("norwayeast", true, false, true),
		region("switzerlandnorth", true, true, true),
		region("uksouth", true, true, true),
		region("ukwest", true, false, true),
		region("eastasia", true, false, true),
		region("southeastasia", true, false, true),
		region("australiaeast", true, true, true),
		region("australiasoutheast", true, false, true),
		region("centralindia", true, false, true),
		region("southindia", true, false, true),
		region("westindia", true, false, true),
		region("japaneast", true, true, true),
		region("japanwest", true, false, true),
		region("koreacentral", true, false, true),
		region("koreasouth", true, false, true),
	}
}

func skuDefinitions() []domain.SkuRule {
	return []domain.SkuRule{
		{
			Key:         domain.KeyAIServicesSKU,
			ValidValues: []string{"F0", "S0", "S1", "S2", "S3", "S4"},
			Limitations: map[string]string{
				"F0": "Free tier: 20 transactions/minute, limited features",
				"S0": "Standard: Pay-per-use, full features",
			},
		},
		{
			Key:         domain.KeyOpenAISKU,
			ValidValues: []string{"S0"},
			Limitations: map[string]string{
				"S0": "Standard: Pay-per-token consumption",
			},
		},
		{
			Key: domain.KeySearchSKU,
			ValidValues: []string{
				"free", "basic", "standard", "standard2", "standard3",
				"storage_optimized_l1", "storage_optimized_l2",
			},
			Limitations: map[string]string{
				"free":  "Free: 50MB storage, 3 indexes, 10k documents",
				"basic": "Basic: 2GB storage, 15 indexes, 1M documents",
			},
		},
		{
			Key: domain.KeyStorageSKU,
			ValidValues: []string{
				"Standard_LRS", "Standard_GRS", "Standard_RAGRS",
				"Standard_ZRS", "Premium_LRS", "Premium_ZRS",
			},
			Limitations: map[string]string{
				"Standard_LRS": "Locally redundant storage",
				"Premium_LRS":  "Premium requires specific VM types",
			},
		},
		{
			Key:         domain.KeyContainerRegistrySKU,
			ValidValues: []string{"Basic", "Standard", "Premium"},
			Limitations: map[string]string{
				"Basic":   "Basic: 10GB storage, limited features",
				"Premium": "Premium: 500GB storage, advanced features",
			},
		},
		{
			Key:         domain.KeyLogAnalyticsSKU,
			ValidValues: []string{"PerGB2018", "Free", "Standalone", "PerNode"},
			Limitations: map[string]string{
				"Free":      "Free: 500MB/day limit, 7-day retention",
				"PerGB2018": "Pay per GB ingested",
			},
		},
	}
}
