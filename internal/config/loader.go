// Package config resolves the AWS connection settings s3find needs to
// build a storage provider: credentials, region, custom endpoint, and
// path-style addressing. CLI flags take precedence; viper binds the
// same settings to S3FIND_* environment variables as a scripting
// convenience, falling back to the AWS SDK's own default chain when
// neither a flag nor an S3FIND_* variable is set.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Flags mirrors the subset of root-command flags that affect provider
// construction, passed in by internal/cmd after parsing argv.
type Flags struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	EndpointURL     string
	ForcePathStyle  bool
	Profile         string
}

// AWSConfig is the resolved configuration handed to the provider
// constructor. An empty field means "let the AWS SDK's own default
// chain resolve it" (environment, shared config/credentials file,
// instance metadata).
type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	EndpointURL     string
	ForcePathStyle  bool
	Profile         string
}

// Resolve merges flags with S3FIND_* environment aliases, flags
// winning over environment, which wins over the AWS SDK's own default
// resolution (left blank here so LoadDefaultConfig can do it).
//
// viper's own precedence (explicit Set > flag > env > config > default)
// only puts a value ahead of AutomaticEnv when it is bound as a flag via
// BindPFlag; a value merely passed through SetDefault sits below env.
// Since an unset flag and a flag explicitly set to its zero value are
// indistinguishable here, flags are applied as the viper default for
// the "nothing set anywhere" case, and then checked directly in Go so a
// non-zero flag always wins over S3FIND_* regardless of viper's own
// env-vs-default ordering.
func Resolve(flags Flags) AWSConfig {
	v := viper.New()
	v.SetEnvPrefix("S3FIND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("aws-access-key", flags.AccessKeyID)
	v.SetDefault("aws-secret-key", flags.SecretAccessKey)
	v.SetDefault("aws-region", flags.Region)
	v.SetDefault("endpoint-url", flags.EndpointURL)
	v.SetDefault("profile", flags.Profile)
	v.SetDefault("force-path-style", flags.ForcePathStyle)

	return AWSConfig{
		AccessKeyID:     firstNonEmpty(flags.AccessKeyID, v.GetString("aws-access-key")),
		SecretAccessKey: firstNonEmpty(flags.SecretAccessKey, v.GetString("aws-secret-key")),
		Region:          firstNonEmpty(flags.Region, v.GetString("aws-region")),
		EndpointURL:     firstNonEmpty(flags.EndpointURL, v.GetString("endpoint-url")),
		ForcePathStyle:  flags.ForcePathStyle || v.GetBool("force-path-style"),
		Profile:         firstNonEmpty(flags.Profile, v.GetString("profile")),
	}
}

func firstNonEmpty(flagValue, viperValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viperValue
}

// Validate checks the one configuration invariant Resolve cannot
// enforce through defaults alone: an explicit access key requires an
// explicit secret key and vice versa.
func (c AWSConfig) Validate() error {
	if (c.AccessKeyID != "") != (c.SecretAccessKey != "") {
		return &FlagError{Message: "--aws-access-key and --aws-secret-key must be provided together"}
	}
	return nil
}

// FlagError reports a configuration problem detected before any I/O,
// mapped to the argument-parsing exit code.
type FlagError struct {
	Message string
}

func (e *FlagError) Error() string { return e.Message }
