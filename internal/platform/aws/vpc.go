package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EnsureVPC ensures a VPC with the given name and CIDR exists and returns
// its ID. An existing VPC with a different CIDR is an error, not an update;
// address ranges are immutable in EC2.
func (c *RealClient) EnsureVPC(ctx context.Context, name, cidr string) (string, error) {
	existing, err := c.findVPC(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if aws.ToString(existing.CidrBlock) != cidr {
			return "", fmt.Errorf("vpc %s exists with CIDR %s (expected %s)",
				name, aws.ToString(existing.CidrBlock), cidr)
		}
		return aws.ToString(existing.VpcId), nil
	}

	result, err := c.ec2.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock:         aws.String(cidr),
		TagSpecifications: nameTags(types.ResourceTypeVpc, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create vpc %s: %w", name, err)
	}
	if result.Vpc == nil || result.Vpc.VpcId == nil {
		return "", fmt.Errorf("vpc create for %s returned no ID", name)
	}
	vpcID := aws.ToString(result.Vpc.VpcId)

	// Instances need DNS hostnames for the inventory's public addresses to
	// resolve both ways.
	for _, attr := range []types.VpcAttributeName{
		types.VpcAttributeNameEnableDnsSupport,
		types.VpcAttributeNameEnableDnsHostnames,
	} {
		input := &ec2.ModifyVpcAttributeInput{VpcId: aws.String(vpcID)}
		if attr == types.VpcAttributeNameEnableDnsSupport {
			input.EnableDnsSupport = &types.AttributeBooleanValue{Value: aws.Bool(true)}
		} else {
			input.EnableDnsHostnames = &types.AttributeBooleanValue{Value: aws.Bool(true)}
		}
		if _, err := c.ec2.ModifyVpcAttribute(ctx, input); err != nil {
			return "", fmt.Errorf("failed to enable %s on vpc %s: %w", attr, name, err)
		}
	}

	return vpcID, nil
}

// GetVPCID returns the ID of the named VPC, or empty if it does not exist.
func (c *RealClient) GetVPCID(ctx context.Context, name string) (string, error) {
	vpc, err := c.findVPC(ctx, name)
	if err != nil || vpc == nil {
		return "", err
	}
	return aws.ToString(vpc.VpcId), nil
}

// DeleteVPC deletes the named VPC. Missing VPCs are not an error.
func (c *RealClient) DeleteVPC(ctx context.Context, name string) error {
	vpc, err := c.findVPC(ctx, name)
	if err != nil {
		return err
	}
	if vpc == nil {
		return nil
	}
	if _, err := c.ec2.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: vpc.VpcId}); err != nil {
		return fmt.Errorf("failed to delete vpc %s: %w", name, err)
	}
	return nil
}

func (c *RealClient) findVPC(ctx context.Context, name string) (*types.Vpc, error) {
	result, err := c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{nameFilter(name)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe vpc %s: %w", name, err)
	}
	if len(result.Vpcs) == 0 {
		return nil, nil
	}
	return &result.Vpcs[0], nil
}
