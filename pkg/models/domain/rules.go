package domain

import "regexp"

// Scope is the uniqueness domain a resource name competes in.
type Scope string

const (
	ScopeGlobal        Scope = "global"
	ScopeResourceGroup Scope = "resource_group"
	ScopeSubscription  Scope = "subscription"
)

// NamingRule constrains the value of one resource-name key.
type NamingRule struct {
	Key          Key
	Pattern      *regexp.Regexp
	MinLength    int
	MaxLength    int
	Scope        Scope
	Description  string
	Restrictions []string
}

// Capability is a service family whose availability varies per region.
type Capability string

const (
	CapabilityAIServices Capability = "ai_services"
	CapabilityOpenAI     Capability = "openai"
	CapabilitySearch     Capability = "search"
)

// RegionCapability records which service families a region offers.
type RegionCapability struct {
	Region       string
	Capabilities map[Capability]bool
}

func (r RegionCapability) Has(c Capability) bool {
	return r.Capabilities[c]
}

// SkuRule lists the accepted tiers of one SKU key. Limitations may cover only
// some of the valid values.
type SkuRule struct {
	Key         Key
	ValidValues []string
	Limitations map[string]string
}
