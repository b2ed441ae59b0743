package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EnsureSubnet ensures a public subnet with the given name exists in the VPC
// and returns its ID. Instances launched into it receive public addresses.
func (c *RealClient) EnsureSubnet(ctx context.Context, vpcID, name, cidr, availabilityZone string) (string, error) {
	existing, err := c.findSubnet(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if aws.ToString(existing.CidrBlock) != cidr {
			return "", fmt.Errorf("subnet %s exists with CIDR %s (expected %s)",
				name, aws.ToString(existing.CidrBlock), cidr)
		}
		return aws.ToString(existing.SubnetId), nil
	}

	input := &ec2.CreateSubnetInput{
		VpcId:             aws.String(vpcID),
		CidrBlock:         aws.String(cidr),
		TagSpecifications: nameTags(types.ResourceTypeSubnet, name),
	}
	if availabilityZone != "" {
		input.AvailabilityZone = aws.String(availabilityZone)
	}

	result, err := c.ec2.CreateSubnet(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to create subnet %s: %w", name, err)
	}
	if result.Subnet == nil || result.Subnet.SubnetId == nil {
		return "", fmt.Errorf("subnet create for %s returned no ID", name)
	}
	subnetID := aws.ToString(result.Subnet.SubnetId)

	_, err = c.ec2.ModifySubnetAttribute(ctx, &ec2.ModifySubnetAttributeInput{
		SubnetId:            aws.String(subnetID),
		MapPublicIpOnLaunch: &types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to enable public addresses on subnet %s: %w", name, err)
	}

	return subnetID, nil
}

// DeleteSubnet deletes the named subnet. Missing subnets are not an error.
func (c *RealClient) DeleteSubnet(ctx context.Context, name string) error {
	subnet, err := c.findSubnet(ctx, name)
	if err != nil {
		return err
	}
	if subnet == nil {
		return nil
	}
	if _, err := c.ec2.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: subnet.SubnetId}); err != nil {
		return fmt.Errorf("failed to delete subnet %s: %w", name, err)
	}
	return nil
}

func (c *RealClient) findSubnet(ctx context.Context, name string) (*types.Subnet, error) {
	result, err := c.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{nameFilter(name)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnet %s: %w", name, err)
	}
	if len(result.Subnets) == 0 {
		return nil, nil
	}
	return &result.Subnets[0], nil
}
