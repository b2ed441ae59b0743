package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EnsureKeyPair ensures the public key is registered with EC2 under the
// given name and returns the key pair ID.
func (c *RealClient) EnsureKeyPair(ctx context.Context, name string, publicKey []byte) (string, error) {
	result, err := c.ec2.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		KeyNames: []string{name},
	})
	if err == nil && len(result.KeyPairs) > 0 {
		return aws.ToString(result.KeyPairs[0].KeyPairId), nil
	}
	if err != nil && !IsNotFound(err) {
		return "", fmt.Errorf("failed to describe key pair %s: %w", name, err)
	}

	imported, err := c.ec2.ImportKeyPair(ctx, &ec2.ImportKeyPairInput{
		KeyName:           aws.String(name),
		PublicKeyMaterial: publicKey,
		TagSpecifications: nameTags(types.ResourceTypeKeyPair, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to import key pair %s: %w", name, err)
	}
	if imported.KeyPairId == nil {
		return "", fmt.Errorf("key pair import for %s returned no ID", name)
	}
	return aws.ToString(imported.KeyPairId), nil
}

// DeleteKeyPair removes the named key pair. Missing key pairs are not an
// error.
func (c *RealClient) DeleteKeyPair(ctx context.Context, name string) error {
	_, err := c.ec2.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
		KeyName: aws.String(name),
	})
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete key pair %s: %w", name, err)
	}
	return nil
}
