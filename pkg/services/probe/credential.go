package probe

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

const ManagementScope = "https://management.azure.com/.default"

// CredentialProbe asks a token credential for an ARM token instead of
// shelling out. It proves the login works but cannot name the subscription.
type CredentialProbe struct {
	cred           azcore.TokenCredential
	subscriptionID string
	tenantID       string
}

func NewCredentialProbe(cred azcore.TokenCredential, subscriptionID, tenantID string) *CredentialProbe {
	return &CredentialProbe{cred: cred, subscriptionID: subscriptionID, tenantID: tenantID}
}

func (p *CredentialProbe) Probe(ctx context.Context) domain.ProbeResult {
	_, err := p.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{ManagementScope}})
	if err == nil {
		return domain.ProbeResult{
			Status:         domain.ProbeAuthenticated,
			SubscriptionID: p.subscriptionID,
			TenantID:       p.tenantID,
		}
	}
	if ctx.Err() != nil {
		return timeout(ctx)
	}

	// Entra ID rejected the request. Anything else means no usable login.
	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return domain.ProbeResult{Status: domain.ProbeFailed, Detail: err.Error()}
	}
	return domain.ProbeResult{Status: domain.ProbeNotAuthenticated, Detail: err.Error()}
}
