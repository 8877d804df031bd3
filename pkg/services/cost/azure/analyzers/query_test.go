package analyzers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQueryClient struct {
	mock.Mock
}

func (m *mockQueryClient) Usage(ctx context.Context, scope string, params armcostmanagement.QueryDefinition, opts *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
	args := m.Called(ctx, scope, params, opts)
	return args.Get(0).(armcostmanagement.QueryClientUsageResponse), args.Error(1)
}

func usageResponse(rows ...[]any) armcostmanagement.QueryClientUsageResponse {
	return armcostmanagement.QueryClientUsageResponse{
		QueryResult: armcostmanagement.QueryResult{
			Properties: &armcostmanagement.QueryProperties{
				Columns: []*armcostmanagement.QueryColumn{
					{Name: to.Ptr("totalCost"), Type: to.Ptr("Number")},
					{Name: to.Ptr("ServiceName"), Type: to.Ptr("String")},
					{Name: to.Ptr("Currency"), Type: to.Ptr("String")},
				},
				Rows: rows,
			},
		},
	}
}

func newTestAnalyzer(client QueryClient) *analyzer {
	a := NewResourceGroupAnalyzer(client, AnalyzerConfig{SubscriptionID: "sub-1", ResourceGroup: "rg-ai-contoso01"}).(*analyzer)
	a.now = func() time.Time { return time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC) }
	return a
}

func TestGenerateReport_GroupsByServiceSortedBySpend(t *testing.T) {
	// Given
	client := new(mockQueryClient)
	client.On("Usage", mock.Anything, "/subscriptions/sub-1/resourceGroups/rg-ai-contoso01",
		mock.MatchedBy(func(q armcostmanagement.QueryDefinition) bool {
			return *q.Dataset.Grouping[0].Name == "ServiceName" && q.TimePeriod.From.Equal(time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC))
		}), mock.Anything).
		Return(usageResponse(
			[]any{2.5, "Storage", "EUR"},
			[]any{7.5, "Cognitive Services", "EUR"},
			[]any{"n/a", "Broken", "EUR"},
		), nil)

	// When
	report, err := newTestAnalyzer(client).GenerateReport(context.Background(), 7)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Resource group rg-ai-contoso01", report.Title)
	assert.Equal(t, 7, report.Period.Duration)
	assert.InDelta(t, 10.0, report.TotalAmount, 1e-9)
	assert.Equal(t, "EUR", report.Currency)
	require.Len(t, report.Sections, 1)
	details := report.Sections[0].Details
	require.Len(t, details, 2)
	assert.Equal(t, "Cognitive Services", details[0].Name)
	assert.Equal(t, "75.0% of total", details[0].Description)
	assert.Equal(t, "Storage", details[1].Name)
	client.AssertExpectations(t)
}

func TestGenerateReport_PropagatesQueryErrors(t *testing.T) {
	client := new(mockQueryClient)
	client.On("Usage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(armcostmanagement.QueryClientUsageResponse{}, errors.New("throttled"))

	_, err := newTestAnalyzer(client).GenerateReport(context.Background(), 30)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestGenerateReport_RejectsNonPositiveDays(t *testing.T) {
	_, err := newTestAnalyzer(new(mockQueryClient)).GenerateReport(context.Background(), 0)
	assert.Error(t, err)
}

func TestGenerateReport_EmptyResult(t *testing.T) {
	client := new(mockQueryClient)
	client.On("Usage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(usageResponse(), nil)

	report, err := newTestAnalyzer(client).GenerateReport(context.Background(), 1)

	require.NoError(t, err)
	assert.Zero(t, report.TotalAmount)
	assert.Equal(t, "USD", report.Currency)
	assert.Empty(t, report.Sections[0].Details)
}
