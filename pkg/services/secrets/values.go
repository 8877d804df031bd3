package secrets

import "github.com/de-tools/ai-foundry/pkg/models/domain"

// Values collects what a deployment publishes: every configuration value
// plus the service endpoints, keyed by secret name.
func Values(cfg domain.Configuration, endpoints map[string]string) map[string]string {
	out := make(map[string]string, len(cfg)+len(endpoints))
	for k, v := range cfg {
		out[SecretName(string(k))] = v
	}
	for k, v := range endpoints {
		out[SecretName(k+"_endpoint")] = v
	}
	return out
}
