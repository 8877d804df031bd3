package validation

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/rs/zerolog"
)

// shortGlobalName is the length under which a globally scoped name is likely
// to collide with an existing resource.
const shortGlobalName = 8

const cliInstallURL = "https://docs.microsoft.com/en-us/cli/azure/"

// checkNaming reports pattern, length and uniqueness problems. The pattern and
// length checks are independent, so one bad value may produce both.
func (e *Engine) checkNaming(_ context.Context, cfg domain.Configuration, out *findings) {
	for _, rule := range e.catalog.NamingRules() {
		value, ok := cfg.Get(rule.Key)
		if !ok {
			continue
		}

		if !rule.Pattern.MatchString(value) {
			out.fail("Invalid %s: '%s' does not match required pattern", rule.Description, value)
			for _, restriction := range rule.Restrictions {
				out.fail("  - %s", restriction)
			}
		}

		length := utf8.RuneCountInString(value)
		if length < rule.MinLength || length > rule.MaxLength {
			out.fail("Invalid %s length: '%s' (%d chars, must be %d-%d)",
				rule.Description, value, length, rule.MinLength, rule.MaxLength)
		}

		if rule.Scope == domain.ScopeGlobal && length < shortGlobalName {
			out.warn("%s '%s' is short and may conflict with existing global resources",
				rule.Description, value)
		}
	}
}

var regionRequirements = []struct {
	capability domain.Capability
	key        domain.Key
	severity   domain.Severity
	message    string
}{
	{domain.CapabilityAIServices, domain.KeyAIServicesName, domain.SeverityError,
		"AI Services not available in region: %s"},
	{domain.CapabilityOpenAI, domain.KeyOpenAIServiceName, domain.SeverityError,
		"Azure OpenAI not available in region: %s"},
	{domain.CapabilitySearch, domain.KeyCognitiveSearchName, domain.SeverityWarning,
		"Cognitive Search may have limited availability in region: %s"},
}

// checkRegion verifies that the region offers every service the configuration
// asks for. Unknown regions only warn.
func (e *Engine) checkRegion(_ context.Context, cfg domain.Configuration, out *findings) {
	value, ok := cfg.Get(domain.KeyLocation)
	if !ok {
		return
	}

	location := strings.ToLower(value)
	region, known := e.catalog.Region(location)
	if !known {
		out.warn("Uncommon Azure location: '%s'. Verify all services are available in this region.", location)
		return
	}

	for _, req := range regionRequirements {
		if _, requested := cfg.Get(req.key); !requested {
			continue
		}
		if !region.Has(req.capability) {
			out.add(req.severity, fmt.Sprintf(req.message, location))
		}
	}
}

func (e *Engine) checkSkus(_ context.Context, cfg domain.Configuration, out *findings) {
	for _, rule := range e.catalog.SkuRules() {
		value, ok := cfg.Get(rule.Key)
		if !ok {
			continue
		}

		if !slices.Contains(rule.ValidValues, value) {
			out.fail("Invalid %s: '%s'. Valid options: %s",
				rule.Key, value, strings.Join(rule.ValidValues, ", "))
			continue
		}

		if note, ok := rule.Limitations[value]; ok {
			out.info("%s (%s): %s", rule.Key, value, note)
		}
	}
}

func (e *Engine) checkBooleans(_ context.Context, cfg domain.Configuration, out *findings) {
	for _, key := range e.catalog.BooleanKeys() {
		value, ok := cfg.Get(key)
		if !ok {
			continue
		}
		switch strings.ToLower(value) {
		case "true", "false":
		default:
			out.fail("Invalid boolean value for %s: '%s' (must be 'true' or 'false')", key, value)
		}
	}
}

func (e *Engine) checkNetworkAccess(_ context.Context, cfg domain.Configuration, out *findings) {
	value, ok := cfg.Get(domain.KeyNetworkAccess)
	if !ok {
		return
	}

	levels := e.catalog.NetworkAccessLevels()
	switch {
	case !slices.Contains(levels, value):
		out.fail("Invalid %s: '%s'. Valid options: %s",
			domain.KeyNetworkAccess, value, strings.Join(levels, ", "))
	case value == "Private":
		out.warn("Private network access requires VNet configuration and may affect connectivity")
	}
}

// checkEmail is a format check only; it says nothing about deliverability.
func (e *Engine) checkEmail(_ context.Context, cfg domain.Configuration, out *findings) {
	value, ok := cfg.Get(domain.KeyResourceOwner)
	if !ok {
		return
	}

	pattern := e.catalog.EmailPattern()
	if pattern == nil {
		return
	}
	if !pattern.MatchString(value) {
		out.warn("%s '%s' may not be a valid email format", domain.KeyResourceOwner, value)
	}
}

// checkTooling asks the probe about the Azure CLI. Whatever goes wrong, the
// outcome is a warning; an authenticated CLI is reported as info.
func (e *Engine) checkTooling(ctx context.Context, _ domain.Configuration, out *findings) {
	if e.probe == nil {
		return
	}

	result := e.runProbe(ctx)
	zerolog.Ctx(ctx).Debug().
		Str("status", string(result.Status)).
		Str("detail", result.Detail).
		Msg("tool probe finished")

	switch result.Status {
	case domain.ProbeAuthenticated:
		if result.SubscriptionID == "" {
			out.info("Azure CLI authenticated")
			return
		}
		name := result.SubscriptionName
		if name == "" {
			name = "Unknown"
		}
		out.info("Azure CLI authenticated: %s (%s...)", name, shortID(result.SubscriptionID))
	case domain.ProbeNotInstalled:
		out.warn("Azure CLI not found. Install from: %s", cliInstallURL)
	case domain.ProbeNotAuthenticated:
		out.warn("Azure CLI not authenticated. Run: az login")
	default:
		out.warn("Could not verify Azure CLI status")
	}
}

// runProbe bounds the probe with the engine timeout and converts a probe that
// ignores its context into a timeout result.
func (e *Engine) runProbe(ctx context.Context) domain.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, e.probeTimeout)
	defer cancel()

	done := make(chan domain.ProbeResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.ProbeResult{Status: domain.ProbeFailed, Detail: fmt.Sprint(r)}
			}
		}()
		done <- e.probe.Probe(ctx)
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return domain.ProbeResult{Status: domain.ProbeTimeout, Detail: "probe did not return before its deadline"}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
