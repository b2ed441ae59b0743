package statestore

import (
	"context"
	"encoding/json"
	"fmt"
)

// ObjectClient is the subset of the S3 client the store needs.
type ObjectClient interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	DeleteObject(ctx context.Context, bucket, key string) error
}

// S3Store keeps the record as a JSON object in an S3 bucket.
type S3Store struct {
	client ObjectClient
	bucket string
	key    string
}

// NewS3Store creates an S3-backed store for the given bucket and object key.
func NewS3Store(client ObjectClient, bucket, key string) (*S3Store, error) {
	if client == nil {
		return nil, fmt.Errorf("object client cannot be nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("state bucket cannot be empty")
	}
	if key == "" {
		return nil, fmt.Errorf("state object key cannot be empty")
	}
	return &S3Store{client: client, bucket: bucket, key: key}, nil
}

// Get reads the record, returning (nil, nil) when the object does not exist.
func (s *S3Store) Get(ctx context.Context) (*Record, error) {
	data, err := s.client.GetObject(ctx, s.bucket, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read state object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	if data == nil {
		return nil, nil
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse state object s3://%s/%s: %w", s.bucket, s.key, err)
	}

	return &record, nil
}

// Put writes the record.
func (s *S3Store) Put(ctx context.Context, record *Record) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state record: %w", err)
	}

	if err := s.client.PutObject(ctx, s.bucket, s.key, data); err != nil {
		return fmt.Errorf("failed to write state object s3://%s/%s: %w", s.bucket, s.key, err)
	}

	return nil
}

// Delete removes the record. Missing objects are tolerated by the client.
func (s *S3Store) Delete(ctx context.Context) error {
	if err := s.client.DeleteObject(ctx, s.bucket, s.key); err != nil {
		return fmt.Errorf("failed to delete state object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}
