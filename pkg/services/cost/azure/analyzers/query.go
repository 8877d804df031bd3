package analyzers

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/cost"
)

type QueryClient interface {
	Usage(ctx context.Context, scope string, parameters armcostmanagement.QueryDefinition, options *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error)
}

type AnalyzerConfig struct {
	SubscriptionID string
	ResourceGroup  string
}

type analyzer struct {
	client QueryClient
	config AnalyzerConfig
	scope  string
	now    func() time.Time
}

func NewQueryClient(cred azcore.TokenCredential) (QueryClient, error) {
	factory, err := armcostmanagement.NewClientFactory(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}
	return factory.NewQueryClient(), nil
}

// NewResourceGroupAnalyzer reports actual cost of one resource group grouped
// by Azure service.
func NewResourceGroupAnalyzer(client QueryClient, config AnalyzerConfig) cost.Analyzer {
	return &analyzer{
		client: client,
		config: config,
		scope:  fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", config.SubscriptionID, config.ResourceGroup),
		now:    time.Now,
	}
}

type serviceCost struct {
	service  string
	amount   float64
	currency string
}

func (a *analyzer) collect(ctx context.Context, start, end time.Time) ([]serviceCost, error) {
	exportType := armcostmanagement.ExportTypeActualCost
	timeframe := armcostmanagement.TimeframeTypeCustom
	dimension := armcostmanagement.QueryColumnTypeDimension
	sum := armcostmanagement.FunctionTypeSum

	params := armcostmanagement.QueryDefinition{
		Type:      &exportType,
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &start,
			To:   &end,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {Name: to.Ptr("PreTaxCost"), Function: &sum},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{Name: to.Ptr("ServiceName"), Type: &dimension},
			},
		},
	}

	result, err := a.client.Usage(ctx, a.scope, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs: %w", err)
	}
	if result.Properties == nil {
		return nil, nil
	}

	idx := map[string]int{}
	for i, c := range result.Properties.Columns {
		if c != nil && c.Name != nil {
			idx[strings.ToLower(*c.Name)] = i
		}
	}
	costIdx, ok := idx["totalcost"]
	if !ok {
		costIdx, ok = idx["pretaxcost"]
	}
	serviceIdx, hasService := idx["servicename"]
	if !ok || !hasService {
		return nil, fmt.Errorf("unexpected cost query columns")
	}
	currencyIdx, hasCurrency := idx["currency"]

	var costs []serviceCost
	for _, row := range result.Properties.Rows {
		if len(row) <= max(costIdx, serviceIdx) {
			continue
		}
		amount, ok := row[costIdx].(float64)
		if !ok {
			continue
		}
		sc := serviceCost{service: fmt.Sprintf("%v", row[serviceIdx]), amount: amount, currency: "USD"}
		if hasCurrency && currencyIdx < len(row) {
			if c, ok := row[currencyIdx].(string); ok && c != "" {
				sc.currency = c
			}
		}
		costs = append(costs, sc)
	}
	return costs, nil
}

func (a *analyzer) GenerateReport(ctx context.Context, days int) (*domain.Report, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	end := a.now()
	start := end.AddDate(0, 0, -days)

	costs, err := a.collect(ctx, start, end)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(costs, func(x, y serviceCost) int {
		switch {
		case x.amount > y.amount:
			return -1
		case x.amount < y.amount:
			return 1
		}
		return strings.Compare(x.service, y.service)
	})

	currency := "USD"
	var total float64
	for _, c := range costs {
		total += c.amount
		currency = c.currency
	}

	details := make([]domain.ReportDetail, 0, len(costs))
	for _, c := range costs {
		share := 0.0
		if total > 0 {
			share = c.amount / total * 100
		}
		details = append(details, domain.ReportDetail{
			Name:        c.service,
			Value:       c.amount,
			Unit:        c.currency,
			Description: fmt.Sprintf("%.1f%% of total", share),
		})
	}

	return &domain.Report{
		Title: fmt.Sprintf("Resource group %s", a.config.ResourceGroup),
		Period: domain.TimePeriod{
			Start:    start,
			End:      end,
			Duration: days,
		},
		Sections: []domain.ReportSection{{
			Title:   "Cost by service",
			Details: details,
			Summary: map[string]interface{}{
				"Services": len(costs),
			},
		}},
		TotalAmount: total,
		Currency:    currency,
	}, nil
}
