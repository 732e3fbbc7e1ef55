package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersEveryVerb(t *testing.T) {
	want := []string{"ls", "print", "exec", "delete", "download", "copy", "move", "tags", "lstags", "public", "restore", "change-storage"}
	got := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "expected %q to be registered", name)
	}
}

func TestRootCommandHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--help"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "s3find")
}

func TestSplitTag(t *testing.T) {
	key, value, ok := splitTag("environment:prod")
	require.True(t, ok)
	assert.Equal(t, "environment", key)
	assert.Equal(t, "prod", value)

	_, _, ok = splitTag("no-colon")
	assert.False(t, ok)
}

func TestSplitTagAllowsColonInValue(t *testing.T) {
	key, value, ok := splitTag("url:https://example.com")
	require.True(t, ok)
	assert.Equal(t, "url", key)
	assert.Equal(t, "https://example.com", value)
}

func TestBuildObjectChainRejectsInvalidRegex(t *testing.T) {
	old := flagRegex
	flagRegex = []string{"("}
	defer func() { flagRegex = old }()

	_, err := buildObjectChain()
	assert.Error(t, err)
}

func TestBuildObjectChainRejectsInvalidSize(t *testing.T) {
	old := flagSize
	flagSize = []string{"not-a-size"}
	defer func() { flagSize = old }()

	_, err := buildObjectChain()
	assert.Error(t, err)
}

func TestBuildTagChainRejectsMalformedTag(t *testing.T) {
	old := flagTag
	flagTag = []string{"no-colon-here"}
	defer func() { flagTag = old }()

	_, err := buildTagChain()
	assert.Error(t, err)
}

func TestChooseListingModeExplicitZeroDepthUsesDelimiter(t *testing.T) {
	mode, ignored := chooseListingMode(0, false)
	assert.Equal(t, modeDelimiter, mode)
	assert.False(t, ignored)
}

func TestChooseListingModeUnsetDepthIsFlat(t *testing.T) {
	mode, ignored := chooseListingMode(maxDepthUnset, false)
	assert.Equal(t, modeFlat, mode)
	assert.False(t, ignored)
}

func TestChooseListingModePositiveDepthUsesDelimiter(t *testing.T) {
	mode, ignored := chooseListingMode(3, false)
	assert.Equal(t, modeDelimiter, mode)
	assert.False(t, ignored)
}

func TestChooseListingModeAllVersionsWinsOverDepth(t *testing.T) {
	mode, ignored := chooseListingMode(2, true)
	assert.Equal(t, modeVersions, mode)
	assert.True(t, ignored, "explicit --maxdepth with --all-versions should report it was ignored")
}

func TestChooseListingModeAllVersionsWithoutDepthNotIgnored(t *testing.T) {
	mode, ignored := chooseListingMode(maxDepthUnset, true)
	assert.Equal(t, modeVersions, mode)
	assert.False(t, ignored)
}

func TestBuildTagChainAcceptsExistsAndEquals(t *testing.T) {
	oldTag, oldExists := flagTag, flagTagExists
	flagTag = []string{"environment:prod"}
	flagTagExists = []string{"owner"}
	defer func() { flagTag, flagTagExists = oldTag, oldExists }()

	chain, err := buildTagChain()
	require.NoError(t, err)
	assert.Equal(t, 2, chain.Len())
}
