package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFlagsOnly(t *testing.T) {
	cfg := Resolve(Flags{
		AccessKeyID:     "AKIA...",
		SecretAccessKey: "secret",
		Region:          "eu-west-1",
		EndpointURL:     "http://localhost:9000",
		ForcePathStyle:  true,
		Profile:         "dev",
	})

	assert.Equal(t, "AKIA...", cfg.AccessKeyID)
	assert.Equal(t, "secret", cfg.SecretAccessKey)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "http://localhost:9000", cfg.EndpointURL)
	assert.True(t, cfg.ForcePathStyle)
	assert.Equal(t, "dev", cfg.Profile)
}

func TestResolveEmptyFlagsLeaveAWSSDKDefaultsUnset(t *testing.T) {
	cfg := Resolve(Flags{})

	assert.Empty(t, cfg.AccessKeyID)
	assert.Empty(t, cfg.SecretAccessKey)
	assert.Empty(t, cfg.Region)
	assert.Empty(t, cfg.EndpointURL)
	assert.False(t, cfg.ForcePathStyle)
}

func TestResolveEnvOverridesWhenFlagUnset(t *testing.T) {
	t.Setenv("S3FIND_AWS_REGION", "ap-southeast-2")
	t.Setenv("S3FIND_FORCE_PATH_STYLE", "true")

	cfg := Resolve(Flags{})
	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.True(t, cfg.ForcePathStyle)
}

func TestResolveFlagsWinOverEnv(t *testing.T) {
	t.Setenv("S3FIND_AWS_REGION", "ap-southeast-2")

	cfg := Resolve(Flags{Region: "us-west-2"})
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestValidateRequiresBothCredentialFields(t *testing.T) {
	cfg := AWSConfig{AccessKeyID: "AKIA..."}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be provided together")
}

func TestValidateAllowsNeitherCredentialField(t *testing.T) {
	require.NoError(t, AWSConfig{}.Validate())
}

func TestValidateAllowsBothCredentialFields(t *testing.T) {
	require.NoError(t, AWSConfig{AccessKeyID: "a", SecretAccessKey: "b"}.Validate())
}
