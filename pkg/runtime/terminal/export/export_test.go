package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/models/store"
)

var fixedTime = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func summaryWith(findings ...domain.Finding) *domain.ValidationSummary {
	cfg := domain.Configuration{domain.KeyLocation: "eastus", domain.KeyResourceGroup: "rg-ai-x"}
	return domain.NewValidationSummary(fixedTime, cfg, findings)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestValidationReporter_TextNumbersFindingsBySeverity(t *testing.T) {
	// Given
	var buf bytes.Buffer
	r, err := NewValidationReporter(&buf, FormatText, false)
	require.NoError(t, err)
	summary := summaryWith(
		domain.Finding{Severity: domain.SeverityInfo, Message: "AI Services SKU (S0): Standard"},
		domain.Finding{Severity: domain.SeverityWarning, Message: "first warning"},
		domain.Finding{Severity: domain.SeverityWarning, Message: "second warning"},
		domain.Finding{Severity: domain.SeverityError, Message: "broken name"},
	)

	// When
	require.NoError(t, r.Handle(summary))

	// Then
	out := buf.String()
	assert.Contains(t, out, "Variables Loaded: 2")
	assert.Contains(t, out, "   1. AI Services SKU (S0): Standard")
	assert.Contains(t, out, "2 Warning(s):\n   1. first warning\n   2. second warning\n")
	assert.Contains(t, out, "1 Error(s) found:\n   1. broken name\n")
	assert.Contains(t, out, "Configuration validation failed!")
	assert.Contains(t, out, "Re-run: aif validate")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Warning(s)")), bytes.Index(buf.Bytes(), []byte("Error(s)")))
}

func TestValidationReporter_TextVerdicts(t *testing.T) {
	tests := []struct {
		name    string
		summary *domain.ValidationSummary
		want    string
	}{
		{name: "clean", summary: summaryWith(), want: "Configuration validation passed successfully!"},
		{
			name:    "warnings only",
			summary: summaryWith(domain.Finding{Severity: domain.SeverityWarning, Message: "w"}),
			want:    "Configuration is valid with warnings noted above.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := NewValidationReporter(&buf, FormatText, false)
			require.NoError(t, err)

			require.NoError(t, r.Handle(tc.summary))

			assert.Contains(t, buf.String(), tc.want)
			assert.Contains(t, buf.String(), "aif deploy --dry-run")
			assert.NotContains(t, buf.String(), "Error(s) found")
		})
	}
}

func TestValidationReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewValidationReporter(&buf, FormatJSON, true)
	require.NoError(t, err)

	require.NoError(t, r.Handle(summaryWith(domain.Finding{Severity: domain.SeverityError, Message: "bad"})))

	var report api.ValidationReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.False(t, report.IsValid)
	assert.Equal(t, 1, report.ValidationResults.Errors)
	assert.Equal(t, []string{"bad"}, report.Errors)
	assert.Equal(t, "eastus", report.Configuration["LOCATION"])
	assert.True(t, report.Timestamp.Equal(fixedTime))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, field := range []string{"timestamp", "total_variables", "validation_results", "errors", "warnings", "info_messages", "is_valid", "configuration"} {
		assert.Contains(t, raw, field)
	}
}

func TestValidationReporter_YAMLOmitsConfigurationWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewValidationReporter(&buf, FormatYAML, false)
	require.NoError(t, err)

	require.NoError(t, r.Handle(summaryWith()))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, true, raw["is_valid"])
	assert.Empty(t, raw["configuration"])
}

func TestDeploymentReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	summary := &domain.DeploymentSummary{
		RunID:  "4f1c",
		DryRun: true,
		Steps: []domain.StepResult{
			{Resource: domain.ResourceSpec{DisplayName: "Resource Group", Name: "rg-ai-x"}, Status: domain.StepExisting},
			{Resource: domain.ResourceSpec{DisplayName: "Key Vault", Name: "kv1"}, Status: domain.StepFailed, Err: errors.New("denied")},
		},
		Endpoints: map[string]string{"key_vault": "https://kv1.vault.azure.net/"},
	}

	require.NoError(t, NewDeploymentReporter(&buf, FormatText).Handle(summary))

	out := buf.String()
	assert.Contains(t, out, "Deployment 4f1c (dry run)")
	assert.Contains(t, out, "- Resource Group: rg-ai-x [existing]")
	assert.Contains(t, out, "- Key Vault: kv1 [failed]\n  denied")
	assert.Contains(t, out, "key_vault: https://kv1.vault.azure.net/")
}

func TestCostReporter_RendersTable(t *testing.T) {
	var buf bytes.Buffer
	report := &domain.Report{
		Title:       "Resource group rg-ai-x",
		Period:      domain.TimePeriod{Start: fixedTime.AddDate(0, 0, -7), End: fixedTime, Duration: 7},
		Currency:    "USD",
		TotalAmount: 12.5,
		Sections: []domain.ReportSection{{
			Title:   "Cost by service",
			Summary: map[string]interface{}{"services": 1},
			Details: []domain.ReportDetail{{Name: "Azure OpenAI", Value: 12.5, Unit: "USD", Description: "100.0% of total"}},
		}},
	}

	require.NoError(t, NewCostReporter(&buf).Handle(report))

	out := buf.String()
	assert.Contains(t, out, "Resource group rg-ai-x (7 days)")
	assert.Contains(t, out, "Total Amount: USD 12.50")
	assert.Contains(t, out, "Azure OpenAI")
	assert.Contains(t, out, "12.50")
}

func TestHistoryReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	failure := "conflict"
	runs := []*store.DeploymentRun{
		{RunID: "run-2", StartedAt: fixedTime, ResourceGroup: "rg-ai-x", Location: "eastus", DryRun: true, Succeeded: true},
		{
			RunID: "run-1", StartedAt: fixedTime.Add(-time.Hour), ResourceGroup: "rg-ai-x", Location: "eastus",
			Steps: []store.DeploymentStep{{Resource: "Key Vault", Status: "failed", Error: &failure}},
		},
	}

	require.NoError(t, NewHistoryReporter(&buf, FormatText).Handle(runs))

	out := buf.String()
	assert.Contains(t, out, "2025-06-01 12:30:00  run-2  rg-ai-x (eastus)  dry run")
	assert.Contains(t, out, "run-1  rg-ai-x (eastus)  failed\n    Key Vault: conflict")
}

func TestHistoryReporter_EmptyText(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewHistoryReporter(&buf, FormatText).Handle(nil))

	assert.Equal(t, "No deployment runs recorded.\n", buf.String())
}
