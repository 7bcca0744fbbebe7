package middleware

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
)

func MergeErrors(errCh <-chan error) error {
	result := []error{}
	for err := range errCh {
		result = append(result, err)
	}

	return errors.Join(result...)
}

// IsResourceNotFound reports whether the remote call failed because the
// resource no longer exists. Teardown treats this as already done.
func IsResourceNotFound(err error) bool {
	var notFound *types.ResourceNotFoundException
	return errors.As(err, &notFound)
}

// IsNamingConflict reports whether a create was rejected for an existing
// name. The list-then-create precheck avoids this on first use but cannot
// protect against a concurrent run.
func IsNamingConflict(err error) bool {
	var conflict *types.ConflictException
	return errors.As(err, &conflict)
}
