package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const managedByTag = "webfleet"

// nameTags returns the tag specification applied to every created resource:
// the Name tag Ensure operations key on, plus a managed-by marker.
func nameTags(resourceType types.ResourceType, name string) []types.TagSpecification {
	return []types.TagSpecification{
		{
			ResourceType: resourceType,
			Tags: []types.Tag{
				{Key: aws.String("Name"), Value: aws.String(name)},
				{Key: aws.String("ManagedBy"), Value: aws.String(managedByTag)},
			},
		},
	}
}

// nameFilter matches resources by their Name tag.
func nameFilter(name string) types.Filter {
	return types.Filter{
		Name:   aws.String("tag:Name"),
		Values: []string{name},
	}
}
