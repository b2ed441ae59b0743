package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const unrestrictedCIDR = "0.0.0.0/0"

// EnsureSecurityGroup ensures a security group with the given name exists in
// the VPC and carries every ingress rule in the rule set, returning its ID.
// Ingress rules are re-authorized on every call with duplicates tolerated,
// so a run that died between group creation and rule authorization converges
// on the next call.
//
// EC2 attaches an allow-all egress rule to every newly created group, which
// is exactly the single egress rule the rule set calls for, so no egress
// call is made.
func (c *RealClient) EnsureSecurityGroup(ctx context.Context, vpcID, name, description string, rules RuleSet) (string, error) {
	existing, err := c.findSecurityGroup(ctx, name)
	if err != nil {
		return "", err
	}

	var sgID string
	if existing != nil {
		sgID = aws.ToString(existing.GroupId)
	} else {
		result, err := c.ec2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
			VpcId:             aws.String(vpcID),
			GroupName:         aws.String(name),
			Description:       aws.String(description),
			TagSpecifications: nameTags(types.ResourceTypeSecurityGroup, name),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create security group %s: %w", name, err)
		}
		if result.GroupId == nil {
			return "", fmt.Errorf("security group create for %s returned no ID", name)
		}
		sgID = aws.ToString(result.GroupId)
	}

	for _, rule := range rules.Ingress {
		_, err = c.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
			GroupId: aws.String(sgID),
			IpPermissions: []types.IpPermission{
				{
					IpProtocol: aws.String("tcp"),
					FromPort:   aws.Int32(rule.Port),
					ToPort:     aws.Int32(rule.Port),
					IpRanges: []types.IpRange{
						{
							CidrIp:      aws.String(unrestrictedCIDR),
							Description: aws.String(rule.Description),
						},
					},
				},
			},
		})
		if err != nil && !IsDuplicate(err) {
			return "", fmt.Errorf("failed to add ingress rule %q to %s: %w", rule.Description, name, err)
		}
	}

	return sgID, nil
}

// DeleteSecurityGroup deletes the named group. Missing groups are not an
// error.
func (c *RealClient) DeleteSecurityGroup(ctx context.Context, name string) error {
	sg, err := c.findSecurityGroup(ctx, name)
	if err != nil {
		return err
	}
	if sg == nil {
		return nil
	}
	if _, err := c.ec2.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: sg.GroupId,
	}); err != nil {
		return fmt.Errorf("failed to delete security group %s: %w", name, err)
	}
	return nil
}

func (c *RealClient) findSecurityGroup(ctx context.Context, name string) (*types.SecurityGroup, error) {
	result, err := c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []types.Filter{nameFilter(name)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe security group %s: %w", name, err)
	}
	if len(result.SecurityGroups) == 0 {
		return nil, nil
	}
	return &result.SecurityGroups[0], nil
}
