package deploy

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

// ResourceClient is the slice of Azure Resource Manager the orchestrator uses.
type ResourceClient interface {
	GroupExists(ctx context.Context, name string) (bool, error)
	CreateGroup(ctx context.Context, name, location string, tags map[string]string) error
	Exists(ctx context.Context, id string, spec domain.ResourceSpec) (bool, error)
	Create(ctx context.Context, id, location string, spec domain.ResourceSpec, tags map[string]string) error
}

type armClient struct {
	resources *armresources.Client
	groups    *armresources.ResourceGroupsClient
}

func NewARMClient(subscriptionID string, cred azcore.TokenCredential) (ResourceClient, error) {
	resources, err := armresources.NewClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}
	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	return &armClient{resources: resources, groups: groups}, nil
}

func (c *armClient) GroupExists(ctx context.Context, name string) (bool, error) {
	resp, err := c.groups.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check resource group %s: %w", name, err)
	}
	return resp.Success, nil
}

func (c *armClient) CreateGroup(ctx context.Context, name, location string, tags map[string]string) error {
	_, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     toPtrMap(tags),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w", name, err)
	}
	return nil
}

func (c *armClient) Exists(ctx context.Context, id string, spec domain.ResourceSpec) (bool, error) {
	resp, err := c.resources.CheckExistenceByID(ctx, id, spec.APIVersion, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", id, err)
	}
	return resp.Success, nil
}

func (c *armClient) Create(ctx context.Context, id, location string, spec domain.ResourceSpec, tags map[string]string) error {
	body := armresources.GenericResource{
		Location:   to.Ptr(location),
		Properties: spec.Properties,
		Tags:       toPtrMap(tags),
	}
	if spec.Kind != "" {
		body.Kind = to.Ptr(spec.Kind)
	}
	if spec.SKU != "" {
		body.SKU = &armresources.SKU{Name: to.Ptr(spec.SKU)}
	}

	poller, err := c.resources.BeginCreateOrUpdateByID(ctx, id, spec.APIVersion, body, nil)
	if err != nil {
		return fmt.Errorf("failed to start creation of %s: %w", id, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to create %s: %w", id, err)
	}
	return nil
}

func toPtrMap(m map[string]string) map[string]*string {
	out := make(map[string]*string, len(m))
	for k, v := range m {
		out[k] = to.Ptr(v)
	}
	return out
}
