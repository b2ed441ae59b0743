// Package s3 provides a small S3 client for the remote run-state backend.
//
// It supports plain AWS as well as S3-compatible stores via a custom
// endpoint and static credentials. Only the operations the state store
// needs are exposed: object get/put/delete and a missing-key probe.
package s3
