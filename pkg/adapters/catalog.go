package adapters

import (
	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
)

func MapCatalogToApi(c *catalog.Catalog) api.Catalog {
	out := api.Catalog{
		Version:       c.Version(),
		NamingRules:   []api.NamingRule{},
		Regions:       []api.Region{},
		Skus:          []api.SkuRule{},
		BooleanKeys:   []string{},
		NetworkAccess: c.NetworkAccessLevels(),
	}
	if p := c.EmailPattern(); p != nil {
		out.EmailPattern = p.String()
	}

	for _, r := range c.NamingRules() {
		out.NamingRules = append(out.NamingRules, api.NamingRule{
			Key:          string(r.Key),
			Pattern:      r.Pattern.String(),
			MinLength:    r.MinLength,
			MaxLength:    r.MaxLength,
			Scope:        string(r.Scope),
			Description:  r.Description,
			Restrictions: r.Restrictions,
		})
	}
	for _, r := range c.Regions() {
		out.Regions = append(out.Regions, api.Region{
			Name:       r.Region,
			AIServices: r.Has(domain.CapabilityAIServices),
			OpenAI:     r.Has(domain.CapabilityOpenAI),
			Search:     r.Has(domain.CapabilitySearch),
		})
	}
	for _, s := range c.SkuRules() {
		out.Skus = append(out.Skus, api.SkuRule{
			Key:         string(s.Key),
			ValidValues: s.ValidValues,
			Limitations: s.Limitations,
		})
	}
	for _, k := range c.BooleanKeys() {
		out.BooleanKeys = append(out.BooleanKeys, string(k))
	}
	return out
}
