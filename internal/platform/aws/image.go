package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ResolveImage returns the ID of the most recently published AMI matching
// the name pattern and owner. Resolution happens at apply time, so a
// re-apply may pick a newer image unless the pattern pins one.
func (c *RealClient) ResolveImage(ctx context.Context, namePattern, owner string) (string, error) {
	result, err := c.ec2.DescribeImages(ctx, &ec2.DescribeImagesInput{
		Owners: []string{owner},
		Filters: []types.Filter{
			{Name: aws.String("name"), Values: []string{namePattern}},
			{Name: aws.String("state"), Values: []string{"available"}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe images for %q: %w", namePattern, err)
	}

	image := latestImage(result.Images)
	if image == nil {
		return "", fmt.Errorf("no available image matches %q owned by %s", namePattern, owner)
	}
	return aws.ToString(image.ImageId), nil
}

// latestImage picks the image with the greatest creation date. AMI creation
// dates are RFC 3339 timestamps, so the lexicographic order is the
// chronological order.
func latestImage(images []types.Image) *types.Image {
	if len(images) == 0 {
		return nil
	}
	sorted := make([]types.Image, len(images))
	copy(sorted, images)
	sort.Slice(sorted, func(i, j int) bool {
		return aws.ToString(sorted[i].CreationDate) > aws.ToString(sorted[j].CreationDate)
	})
	return &sorted[0]
}
