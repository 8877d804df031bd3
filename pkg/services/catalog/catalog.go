package catalog

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

// Version identifies the rule tables compiled into this build.
const Version = "2025.06"

// NamingDefinition is the uncompiled form of a naming rule.
type NamingDefinition struct {
	Key          domain.Key
	Pattern      string
	MinLength    int
	MaxLength    int
	Scope        domain.Scope
	Description  string
	Restrictions []string
}

// Definitions is the raw input Catalog is built from.
type Definitions struct {
	Version       string
	Naming        []NamingDefinition
	Regions       []domain.RegionCapability
	Skus          []domain.SkuRule
	Booleans      []domain.Key
	NetworkAccess []string
	EmailPattern  string
}

// Catalog is the immutable rule set shared by validation runs. Accessors
// return copies so no caller can alter it after construction.
type Catalog struct {
	version       string
	naming        []domain.NamingRule
	regions       map[string]domain.RegionCapability
	regionOrder   []string
	skus          []domain.SkuRule
	booleans      []domain.Key
	networkAccess []string
	email         *regexp.Regexp
}

// Default builds the catalog for Azure AI Foundry deployments.
func Default() (*Catalog, error) {
	return New(defaultDefinitions())
}

// MustDefault is Default for process start-up, where a broken built-in table
// is a programming error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func New(defs Definitions) (*Catalog, error) {
	c := &Catalog{
		version:       defs.Version,
		regions:       make(map[string]domain.RegionCapability, len(defs.Regions)),
		booleans:      slices.Clone(defs.Booleans),
		networkAccess: slices.Clone(defs.NetworkAccess),
	}

	seen := make(map[domain.Key]bool)
	for _, d := range defs.Naming {
		if seen[d.Key] {
			return nil, fmt.Errorf("duplicate naming rule for %s", d.Key)
		}
		seen[d.Key] = true

		rule, err := compileNaming(d)
		if err != nil {
			return nil, err
		}
		c.naming = append(c.naming, rule)
	}

	for _, r := range defs.Regions {
		code := strings.ToLower(r.Region)
		if _, exists := c.regions[code]; exists {
			return nil, fmt.Errorf("duplicate region: %s", code)
		}
		c.regions[code] = domain.RegionCapability{
			Region:       code,
			Capabilities: maps.Clone(r.Capabilities),
		}
		c.regionOrder = append(c.regionOrder, code)
	}

	seen = make(map[domain.Key]bool)
	for _, s := range defs.Skus {
		if seen[s.Key] {
			return nil, fmt.Errorf("duplicate sku rule for %s", s.Key)
		}
		seen[s.Key] = true

		for value := range s.Limitations {
			if !slices.Contains(s.ValidValues, value) {
				return nil, fmt.Errorf("sku %s: limitation for unknown value %q", s.Key, value)
			}
		}
		c.skus = append(c.skus, cloneSku(s))
	}

	if defs.EmailPattern != "" {
		re, err := regexp.Compile(defs.EmailPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid email pattern: %w", err)
		}
		c.email = re
	}

	return c, nil
}

func compileNaming(d NamingDefinition) (domain.NamingRule, error) {
	if d.MinLength > d.MaxLength {
		return domain.NamingRule{}, fmt.Errorf("naming rule %s: min length %d exceeds max length %d",
			d.Key, d.MinLength, d.MaxLength)
	}
	if !strings.HasPrefix(d.Pattern, "^") || !strings.HasSuffix(d.Pattern, "$") {
		return domain.NamingRule{}, fmt.Errorf("naming rule %s: pattern %q is not anchored", d.Key, d.Pattern)
	}
	re, err := regexp.Compile(d.Pattern)
	if err != nil {
		return domain.NamingRule{}, fmt.Errorf("naming rule %s: %w", d.Key, err)
	}
	return domain.NamingRule{
		Key:          d.Key,
		Pattern:      re,
		MinLength:    d.MinLength,
		MaxLength:    d.MaxLength,
		Scope:        d.Scope,
		Description:  d.Description,
		Restrictions: slices.Clone(d.Restrictions),
	}, nil
}

func cloneSku(s domain.SkuRule) domain.SkuRule {
	return domain.SkuRule{
		Key:         s.Key,
		ValidValues: slices.Clone(s.ValidValues),
		Limitations: maps.Clone(s.Limitations),
	}
}

func (c *Catalog) Version() string {
	return c.version
}

// NamingRules returns the naming rules in catalog order.
func (c *Catalog) NamingRules() []domain.NamingRule {
	out := make([]domain.NamingRule, 0, len(c.naming))
	for _, r := range c.naming {
		r.Restrictions = slices.Clone(r.Restrictions)
		out = append(out, r)
	}
	return out
}

// Region looks up a region code case-insensitively.
func (c *Catalog) Region(code string) (domain.RegionCapability, bool) {
	r, ok := c.regions[strings.ToLower(code)]
	if !ok {
		return domain.RegionCapability{}, false
	}
	r.Capabilities = maps.Clone(r.Capabilities)
	return r, true
}

// Regions returns every known region in catalog order.
func (c *Catalog) Regions() []domain.RegionCapability {
	out := make([]domain.RegionCapability, 0, len(c.regionOrder))
	for _, code := range c.regionOrder {
		r, _ := c.Region(code)
		out = append(out, r)
	}
	return out
}

func (c *Catalog) SkuRules() []domain.SkuRule {
	out := make([]domain.SkuRule, 0, len(c.skus))
	for _, s := range c.skus {
		out = append(out, cloneSku(s))
	}
	return out
}

func (c *Catalog) BooleanKeys() []domain.Key {
	return slices.Clone(c.booleans)
}

func (c *Catalog) NetworkAccessLevels() []string {
	return slices.Clone(c.networkAccess)
}

// EmailPattern is nil when the catalog carries no e-mail rule.
func (c *Catalog) EmailPattern() *regexp.Regexp {
	return c.email
}
