package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// IsNotFound reports whether the error is an EC2 not-found API error.
// EC2 uses per-resource codes (InvalidVpcID.NotFound, InvalidGroup.NotFound,
// InvalidKeyPair.NotFound, ...) rather than a single code.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(apiErr.ErrorCode(), "NotFound")
}

// IsDuplicate reports whether the error indicates the resource already
// exists (InvalidKeyPair.Duplicate, InvalidGroup.Duplicate, ...).
func IsDuplicate(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return strings.Contains(code, "Duplicate") || strings.Contains(code, "AlreadyExists")
}

// IsThrottled reports whether the error is a rate-limit rejection. This is
// the only API error class worth retrying; everything else is fatal per the
// error taxonomy (quota, permission, and parameter errors abort the run).
func IsThrottled(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return code == "RequestLimitExceeded" || code == "Throttling" || code == "ThrottlingException"
}
