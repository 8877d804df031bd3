package adapters

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
)

func TestMapValidationSummary_ConfigurationOnlyWhenVerbose(t *testing.T) {
	cfg := domain.Configuration{domain.KeyLocation: "eastus"}
	summary := domain.NewValidationSummary(time.Unix(0, 0), cfg, []domain.Finding{
		{Severity: domain.SeverityError, Message: "bad"},
		{Severity: domain.SeverityWarning, Message: "meh"},
	})

	quiet := MapValidationSummaryDomainToApi(summary, false)
	loud := MapValidationSummaryDomainToApi(summary, true)

	assert.Empty(t, quiet.Configuration)
	assert.NotNil(t, quiet.Configuration)
	assert.Equal(t, map[string]string{"LOCATION": "eastus"}, loud.Configuration)
	assert.Equal(t, api.ValidationCounts{Errors: 1, Warnings: 1}, quiet.ValidationResults)
	assert.False(t, quiet.IsValid)
	assert.Equal(t, []string{}, quiet.InfoMessages)
}

func TestMapCatalogToApi(t *testing.T) {
	out := MapCatalogToApi(catalog.MustDefault())

	assert.Equal(t, catalog.Version, out.Version)
	require.Len(t, out.Regions, 31)
	assert.Equal(t, api.Region{Name: "eastus", AIServices: true, OpenAI: true, Search: true}, out.Regions[0])
	assert.Len(t, out.NamingRules, 9)
	assert.Len(t, out.BooleanKeys, 6)
	assert.NotEmpty(t, out.EmailPattern)
}

func TestMapDeploymentSummary(t *testing.T) {
	d := &domain.DeploymentSummary{
		RunID: "run-1",
		Steps: []domain.StepResult{
			{Resource: domain.ResourceSpec{DisplayName: "Key Vault", Name: "kv1"}, Status: domain.StepExisting},
			{Resource: domain.ResourceSpec{DisplayName: "Storage Account", Name: "st1"}, Status: domain.StepFailed, Err: errors.New("quota")},
		},
		Endpoints: map[string]string{"key_vault": "https://kv1.vault.azure.net/"},
	}

	out := MapDeploymentSummaryDomainToApi(d)

	assert.False(t, out.Succeeded)
	require.Len(t, out.Steps, 2)
	assert.Equal(t, "existing", out.Steps[0].Status)
	assert.Equal(t, "quota", out.Steps[1].Error)
	assert.Equal(t, "https://kv1.vault.azure.net/", out.Endpoints["key_vault"])
}

func TestMapDeploymentSummaryToStoreAndBack(t *testing.T) {
	// Given
	summary := &domain.DeploymentSummary{
		RunID:         "run-1",
		StartedAt:     time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		ResourceGroup: "rg-ai-contoso01",
		Location:      "eastus2",
		Steps: []domain.StepResult{
			{Resource: domain.ResourceSpec{DisplayName: "Resource Group", Name: "rg-ai-contoso01"}, Status: domain.StepExisting},
			{Resource: domain.ResourceSpec{DisplayName: "Key Vault", Name: "kvaicontoso01"}, Status: domain.StepFailed, Err: errors.New("conflict")},
		},
	}

	// When
	run := MapDeploymentSummaryDomainToStore(summary)
	out := MapStoreDeploymentRunToApi(run)

	// Then
	assert.False(t, run.Succeeded)
	require.Len(t, run.Steps, 2)
	assert.Equal(t, 1, run.Steps[1].Position)
	assert.Nil(t, run.Steps[0].Error)
	assert.Equal(t, "conflict", out.Steps[1].Error)
	assert.Equal(t, "rg-ai-contoso01", out.ResourceGroup)
}
