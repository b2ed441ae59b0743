package aws

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/webfleet/webfleet/internal/util/retry"
)

// liveInstanceStates are the states an instance counts as existing in for
// Ensure purposes. Terminated instances keep their tags for a while, so the
// name lookup must exclude them.
var liveInstanceStates = []string{"pending", "running"}

// EnsureInstance returns the existing instance with the given name, or
// launches a new one and waits until it is running with a public address.
func (c *RealClient) EnsureInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error) {
	existing, err := c.GetInstanceByName(ctx, opts.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return c.awaitRunning(ctx, opts.Name)
	}

	input := &ec2.RunInstancesInput{
		ImageId:           aws.String(opts.ImageID),
		InstanceType:      types.InstanceType(opts.InstanceType),
		MinCount:          aws.Int32(1),
		MaxCount:          aws.Int32(1),
		KeyName:           aws.String(opts.KeyName),
		SubnetId:          aws.String(opts.SubnetID),
		SecurityGroupIds:  []string{opts.SecurityGroupID},
		TagSpecifications: nameTags(types.ResourceTypeInstance, opts.Name),
	}
	if opts.UserData != "" {
		input.UserData = aws.String(base64.StdEncoding.EncodeToString([]byte(opts.UserData)))
	}

	result, err := c.ec2.RunInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to launch instance %s: %w", opts.Name, err)
	}
	if len(result.Instances) == 0 || result.Instances[0].InstanceId == nil {
		return nil, fmt.Errorf("instance launch for %s returned no instance", opts.Name)
	}

	return c.awaitRunning(ctx, opts.Name)
}

// GetInstanceByName returns the live instance with the given Name tag, or
// nil if none exists.
func (c *RealClient) GetInstanceByName(ctx context.Context, name string) (*Instance, error) {
	return c.findInstance(ctx, name, liveInstanceStates)
}

// TerminateInstance terminates the named instance and waits for the
// terminated state. Missing instances are not an error.
func (c *RealClient) TerminateInstance(ctx context.Context, name string) error {
	instance, err := c.findInstance(ctx, name, []string{"pending", "running", "stopping", "stopped"})
	if err != nil {
		return err
	}
	if instance == nil {
		return nil
	}

	_, err = c.ec2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instance.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to terminate instance %s: %w", name, err)
	}

	return retry.Do(ctx, func() error {
		current, err := c.findInstance(ctx, name, []string{"shutting-down", "terminated"})
		if err != nil {
			return classifyPollError(err)
		}
		if current != nil && current.State != "terminated" {
			return fmt.Errorf("instance %s still %s", name, current.State)
		}
		return nil
	}, retry.WithMaxRetries(60), retry.WithInitialDelay(5*time.Second), retry.WithMaxDelay(10*time.Second))
}

// awaitRunning polls until the instance is running and has a public address.
func (c *RealClient) awaitRunning(ctx context.Context, name string) (*Instance, error) {
	var instance *Instance
	err := retry.Do(ctx, func() error {
		current, err := c.GetInstanceByName(ctx, name)
		if err != nil {
			return classifyPollError(err)
		}
		if current == nil {
			return fmt.Errorf("instance %s not visible yet", name)
		}
		if current.State != "running" || current.PublicIP == "" {
			return fmt.Errorf("instance %s is %s, public address %q", name, current.State, current.PublicIP)
		}
		instance = current
		return nil
	}, retry.WithMaxRetries(60), retry.WithInitialDelay(5*time.Second), retry.WithMaxDelay(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("instance %s never became reachable: %w", name, err)
	}
	return instance, nil
}

// classifyPollError decides whether a describe failure inside a poll loop is
// worth another attempt. Throttled requests are retried on the loop's own
// backoff; every other API error aborts the poll.
func classifyPollError(err error) error {
	if IsThrottled(err) {
		return err
	}
	return retry.Fatal(err)
}

func (c *RealClient) findInstance(ctx context.Context, name string, states []string) (*Instance, error) {
	result, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			nameFilter(name),
			{Name: aws.String("instance-state-name"), Values: states},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instance %s: %w", name, err)
	}

	for _, reservation := range result.Reservations {
		for _, inst := range reservation.Instances {
			out := &Instance{
				ID:        aws.ToString(inst.InstanceId),
				Name:      name,
				PublicIP:  aws.ToString(inst.PublicIpAddress),
				PrivateIP: aws.ToString(inst.PrivateIpAddress),
				PublicDNS: aws.ToString(inst.PublicDnsName),
			}
			if inst.State != nil {
				out.State = string(inst.State.Name)
			}
			return out, nil
		}
	}
	return nil, nil
}
