package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const defaultRouteCIDR = "0.0.0.0/0"

// EnsureInternetGateway ensures an internet gateway with the given name
// exists and is attached to the VPC, returning its ID.
func (c *RealClient) EnsureInternetGateway(ctx context.Context, vpcID, name string) (string, error) {
	existing, err := c.findInternetGateway(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		igwID := aws.ToString(existing.InternetGatewayId)
		for _, att := range existing.Attachments {
			if aws.ToString(att.VpcId) == vpcID {
				return igwID, nil
			}
		}
		if err := c.attachInternetGateway(ctx, vpcID, igwID); err != nil {
			return "", err
		}
		return igwID, nil
	}

	result, err := c.ec2.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{
		TagSpecifications: nameTags(types.ResourceTypeInternetGateway, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create internet gateway %s: %w", name, err)
	}
	if result.InternetGateway == nil || result.InternetGateway.InternetGatewayId == nil {
		return "", fmt.Errorf("internet gateway create for %s returned no ID", name)
	}
	igwID := aws.ToString(result.InternetGateway.InternetGatewayId)

	if err := c.attachInternetGateway(ctx, vpcID, igwID); err != nil {
		return "", err
	}
	return igwID, nil
}

func (c *RealClient) attachInternetGateway(ctx context.Context, vpcID, igwID string) error {
	_, err := c.ec2.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		VpcId:             aws.String(vpcID),
		InternetGatewayId: aws.String(igwID),
	})
	if err != nil {
		return fmt.Errorf("failed to attach internet gateway %s to vpc %s: %w", igwID, vpcID, err)
	}
	return nil
}

// DeleteInternetGateway detaches and deletes the named gateway. Missing
// gateways are not an error.
func (c *RealClient) DeleteInternetGateway(ctx context.Context, vpcID, name string) error {
	igw, err := c.findInternetGateway(ctx, name)
	if err != nil {
		return err
	}
	if igw == nil {
		return nil
	}
	igwID := aws.ToString(igw.InternetGatewayId)

	if vpcID != "" {
		_, err = c.ec2.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
			InternetGatewayId: aws.String(igwID),
			VpcId:             aws.String(vpcID),
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to detach internet gateway %s: %w", name, err)
		}
	}

	if _, err := c.ec2.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
		InternetGatewayId: aws.String(igwID),
	}); err != nil {
		return fmt.Errorf("failed to delete internet gateway %s: %w", name, err)
	}
	return nil
}

// EnsurePublicRouteTable ensures a route table with a default route through
// the gateway exists and is associated with all given subnets. The default
// route and the associations are reconciled on every call, so a table left
// behind by an interrupted run converges on the next one.
func (c *RealClient) EnsurePublicRouteTable(ctx context.Context, vpcID, igwID, name string, subnetIDs []string) (string, error) {
	rtb, err := c.findRouteTable(ctx, name)
	if err != nil {
		return "", err
	}

	var rtbID string
	if rtb != nil {
		rtbID = aws.ToString(rtb.RouteTableId)
	} else {
		result, err := c.ec2.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{
			VpcId:             aws.String(vpcID),
			TagSpecifications: nameTags(types.ResourceTypeRouteTable, name),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create route table %s: %w", name, err)
		}
		if result.RouteTable == nil || result.RouteTable.RouteTableId == nil {
			return "", fmt.Errorf("route table create for %s returned no ID", name)
		}
		rtbID = aws.ToString(result.RouteTable.RouteTableId)
	}

	if !hasDefaultRoute(rtb, igwID) {
		_, err = c.ec2.CreateRoute(ctx, &ec2.CreateRouteInput{
			RouteTableId:         aws.String(rtbID),
			DestinationCidrBlock: aws.String(defaultRouteCIDR),
			GatewayId:            aws.String(igwID),
		})
		if err != nil && !IsDuplicate(err) {
			return "", fmt.Errorf("failed to create default route in %s: %w", name, err)
		}
	}

	associated := map[string]bool{}
	if rtb != nil {
		for _, assoc := range rtb.Associations {
			associated[aws.ToString(assoc.SubnetId)] = true
		}
	}
	for _, subnetID := range subnetIDs {
		if associated[subnetID] {
			continue
		}
		_, err = c.ec2.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
			RouteTableId: aws.String(rtbID),
			SubnetId:     aws.String(subnetID),
		})
		if err != nil {
			return "", fmt.Errorf("failed to associate subnet %s with route table %s: %w", subnetID, name, err)
		}
	}

	return rtbID, nil
}

// DeleteRouteTable deletes the named route table after disassociating its
// subnets. Missing tables are not an error.
func (c *RealClient) DeleteRouteTable(ctx context.Context, name string) error {
	rtb, err := c.findRouteTable(ctx, name)
	if err != nil {
		return err
	}
	if rtb == nil {
		return nil
	}

	for _, assoc := range rtb.Associations {
		if aws.ToBool(assoc.Main) || assoc.RouteTableAssociationId == nil {
			continue
		}
		_, err = c.ec2.DisassociateRouteTable(ctx, &ec2.DisassociateRouteTableInput{
			AssociationId: assoc.RouteTableAssociationId,
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to disassociate route table %s: %w", name, err)
		}
	}

	if _, err := c.ec2.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{
		RouteTableId: rtb.RouteTableId,
	}); err != nil {
		return fmt.Errorf("failed to delete route table %s: %w", name, err)
	}
	return nil
}

// hasDefaultRoute reports whether the table already routes 0.0.0.0/0 through
// the gateway. A nil table has no routes.
func hasDefaultRoute(rtb *types.RouteTable, igwID string) bool {
	if rtb == nil {
		return false
	}
	for _, route := range rtb.Routes {
		if aws.ToString(route.DestinationCidrBlock) == defaultRouteCIDR && aws.ToString(route.GatewayId) == igwID {
			return true
		}
	}
	return false
}

func (c *RealClient) findInternetGateway(ctx context.Context, name string) (*types.InternetGateway, error) {
	result, err := c.ec2.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: []types.Filter{nameFilter(name)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe internet gateway %s: %w", name, err)
	}
	if len(result.InternetGateways) == 0 {
		return nil, nil
	}
	return &result.InternetGateways[0], nil
}

func (c *RealClient) findRouteTable(ctx context.Context, name string) (*types.RouteTable, error) {
	result, err := c.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []types.Filter{nameFilter(name)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe route table %s: %w", name, err)
	}
	if len(result.RouteTables) == 0 {
		return nil, nil
	}
	return &result.RouteTables[0], nil
}
