// Package s3 implements the provider interfaces against AWS S3 and
// S3-compatible stores via aws-sdk-go-v2.
package s3

// Config configures an S3 provider.
//
// Authentication priority (AWS SDK v2 default chain):
//  1. Explicit AccessKeyID/SecretAccessKey (if both set)
//  2. Environment variables (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY)
//  3. Shared credentials file (~/.aws/credentials)
//  4. Shared config file (~/.aws/config) with Profile
//  5. EC2 instance metadata / ECS task role / EKS IRSA
//
// Region handling: if Region is empty and not resolved from env/profile,
// defaults to us-east-1 for AWS S3; no default is applied once Endpoint
// is set, since S3-compatible stores typically ignore region.
type Config struct {
	Bucket string

	Region string

	// Endpoint is a custom endpoint URL for S3-compatible stores
	// (MinIO, Wasabi, DigitalOcean Spaces, ...). Empty for AWS S3.
	Endpoint string

	Profile string

	AccessKeyID     string
	SecretAccessKey string

	// ForcePathStyle is required by most S3-compatible stores.
	ForcePathStyle bool

	// MaxKeys is the default page size. Zero uses DefaultMaxKeys; values
	// over MaxAllowedKeys are clamped.
	MaxKeys int
}

const (
	DefaultMaxKeys  = 1000
	MaxAllowedKeys  = 1000
	DefaultAWSRegion = "us-east-1"
)

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return &ConfigError{Field: "Bucket", Message: "bucket name is required"}
	}
	if (c.AccessKeyID != "") != (c.SecretAccessKey != "") {
		return &ConfigError{
			Field:   "AccessKeyID/SecretAccessKey",
			Message: "both access key ID and secret access key must be provided together",
		}
	}
	return nil
}

// ConfigError reports a configuration validation failure.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "s3 config: " + e.Field + ": " + e.Message
}

// resolveRegion applies the fallback region default after SDK config
// loading has already resolved explicit config, env vars, and profile.
func resolveRegion(endpoint, sdkRegion string) string {
	if sdkRegion != "" {
		return sdkRegion
	}
	if endpoint == "" {
		return DefaultAWSRegion
	}
	return ""
}

// clampMaxKeys applies defaults and the S3 page-size ceiling.
func clampMaxKeys(requested, providerDefault int) int {
	if requested <= 0 {
		requested = providerDefault
	}
	if requested > MaxAllowedKeys {
		return MaxAllowedKeys
	}
	return requested
}
