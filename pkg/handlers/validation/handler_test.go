package validation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
	"github.com/de-tools/ai-foundry/pkg/services/validation"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Observe(summary *domain.ValidationSummary, elapsed time.Duration) {
	m.Called(summary, elapsed)
}

func newTestHandler(recorder Recorder) *Handler {
	c := catalog.MustDefault()
	return NewHandler(validation.NewEngine(c), c, recorder)
}

func validBody(verbose bool, overrides map[string]string) string {
	cfg := map[string]string{
		"LOCATION":                  "eastus2",
		"RESOURCE_GROUP":            "rg-ai-contoso01",
		"KEYVAULT_NAME":             "kvaicontoso01",
		"AI_SERVICES_NAME":          "aiserv-ai-contoso01",
		"OPENAI_SERVICE_NAME":       "openai-contoso01",
		"COGNITIVE_SEARCH_NAME":     "cog-ai-contoso01",
		"STORAGE_ACCOUNT_NAME":      "staicontoso01",
		"CONTAINER_REGISTRY_NAME":   "craicontoso01",
		"LOG_WORKSPACE_NAME":        "log-ai-contoso01",
		"APPLICATION_INSIGHTS_NAME": "ai-ai-contoso01",
	}
	for k, v := range overrides {
		cfg[k] = v
	}
	b, _ := json.Marshal(api.ValidateRequest{Configuration: cfg, Verbose: verbose})
	return string(b)
}

func doValidate(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, api.ValidationReport) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(body)).
		WithContext(context.Background())
	rec := httptest.NewRecorder()

	h.Validate(rec, req)

	var report api.ValidationReport
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	}
	return rec, report
}

func TestValidate_ValidConfiguration(t *testing.T) {
	// Given
	recorder := new(mockRecorder)
	recorder.On("Observe", mock.MatchedBy(func(s *domain.ValidationSummary) bool { return s.IsValid }), mock.Anything).Once()
	h := newTestHandler(recorder)

	// When
	rec, report := doValidate(t, h, validBody(false, nil))

	// Then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, report.IsValid)
	assert.Equal(t, 10, report.TotalVariables)
	assert.Empty(t, report.Configuration)
	recorder.AssertExpectations(t)
}

func TestValidate_InvalidNameReportedWithVerboseConfiguration(t *testing.T) {
	h := newTestHandler(nil)

	rec, report := doValidate(t, h, validBody(true, map[string]string{"STORAGE_ACCOUNT_NAME": "St-AI"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "Invalid Storage Account name: 'St-AI' does not match required pattern")
	assert.Equal(t, "St-AI", report.Configuration["STORAGE_ACCOUNT_NAME"])
}

func TestValidate_MissingRequiredKeysIsAReportNotAnError(t *testing.T) {
	h := newTestHandler(nil)

	rec, report := doValidate(t, h, `{"configuration":{"LOCATION":"eastus"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, report.IsValid)
	assert.Len(t, report.Errors, len(domain.RequiredKeys)-1)
	assert.Contains(t, report.Errors, "Required environment variable missing or empty: RESOURCE_GROUP")
	assert.Empty(t, report.InfoMessages)
}

func TestValidate_MalformedBody(t *testing.T) {
	h := newTestHandler(nil)

	rec, _ := doValidate(t, h, `{"configuration":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
}

func TestGetCatalog(t *testing.T) {
	h := newTestHandler(nil)
	rec := httptest.NewRecorder()

	h.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var c api.Catalog
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	assert.Equal(t, catalog.Version, c.Version)
	assert.Len(t, c.Regions, 31)
}
