package internal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigurationDefaults(t *testing.T) {
	for _, key := range []string{"HELM_BINARY", "CHART_OUTPUT_DIRECTORY", "KEEP_CHART", "HELM_NAMESPACE", "PRUNE_FALSY_SCALARS", "HELM_EXTRA_ARGS", "LOG_LEVEL", "VERIFY_DEPENDENCIES", "HELM_REPOSITORY_CACHE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := ParseConfiguration()
	require.NoError(t, err)
	assert.Equal(t, "helm", cfg.HelmBinary)
	assert.Equal(t, ".", cfg.OutputDirectory)
	assert.False(t, cfg.KeepChart)
	assert.Equal(t, "", cfg.Namespace)
	assert.False(t, cfg.PruneFalsyScalars)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.VerifyDependencies)
	assert.Equal(t, "", cfg.RepositoryCachePath)

	args, err := cfg.ExtraArgs()
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestParseConfigurationFromEnv(t *testing.T) {
	t.Setenv("HELM_BINARY", "/usr/local/bin/helm3")
	t.Setenv("KEEP_CHART", "true")
	t.Setenv("HELM_NAMESPACE", "monitoring")
	t.Setenv("HELM_EXTRA_ARGS", `--kube-context "kind cluster" --debug`)

	cfg, err := ParseConfiguration()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/helm3", cfg.HelmBinary)
	assert.True(t, cfg.KeepChart)
	assert.Equal(t, "monitoring", cfg.Namespace)

	args, err := cfg.ExtraArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"--kube-context", "kind cluster", "--debug"}, args)
}

func TestExtraArgsRejectsUnbalancedQuotes(t *testing.T) {
	cfg := &Configuration{HelmExtraArgs: `--kube-context "kind`}
	_, err := cfg.ExtraArgs()
	assert.Error(t, err)
}
