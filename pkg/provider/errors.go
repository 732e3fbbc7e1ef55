package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	ErrNotFound            = errors.New("object not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrBucketNotFound      = errors.New("bucket not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrThrottled           = errors.New("request throttled")

	// ErrRestoreAlreadyInProgress and ErrInvalidObjectState classify the
	// two Restore outcomes that are informational rather than fatal: a
	// restore already underway, or an object that is not (or no longer)
	// in a cold storage tier.
	ErrRestoreAlreadyInProgress = errors.New("restore already in progress")
	ErrInvalidObjectState       = errors.New("invalid object state for restore")
)

// ProviderError wraps a provider-specific error with operation context.
type ProviderError struct {
	Op        string
	Provider  ProviderType
	Bucket    string
	Key       string
	VersionID string
	Err       error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Key != "" && e.VersionID != "":
		return fmt.Sprintf("%s %s: %s/%s?versionId=%s: %v", e.Provider, e.Op, e.Bucket, e.Key, e.VersionID, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s %s: %s/%s: %v", e.Provider, e.Op, e.Bucket, e.Key, e.Err)
	case e.Bucket != "":
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Op, e.Bucket, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ProviderError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsAccessDenied(err error) bool        { return errors.Is(err, ErrAccessDenied) }
func IsBucketNotFound(err error) bool      { return errors.Is(err, ErrBucketNotFound) }
func IsInvalidCredentials(err error) bool  { return errors.Is(err, ErrInvalidCredentials) }
func IsProviderUnavailable(err error) bool { return errors.Is(err, ErrProviderUnavailable) }
func IsThrottled(err error) bool           { return errors.Is(err, ErrThrottled) }
func IsRestoreAlreadyInProgress(err error) bool { return errors.Is(err, ErrRestoreAlreadyInProgress) }
func IsInvalidObjectState(err error) bool       { return errors.Is(err, ErrInvalidObjectState) }
