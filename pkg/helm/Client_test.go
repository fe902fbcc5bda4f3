package helm

import (
	"context"
	"errors"
	"testing"

	"github.com/devtron-labs/chart-builder/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func TestOptionsArgs(t *testing.T) {
	options := NewOptions().With("wait", "").With("timeout", "30s")
	assert.Equal(t, []string{"--wait", "--timeout", "30s"}, options.Args())
	assert.Equal(t, "--wait --timeout 30s", options.String())

	var none *Options
	assert.Empty(t, none.Args())
	assert.False(t, none.Has("wait"))
}

func TestOptionsWithoutCopies(t *testing.T) {
	options := NewOptions().With("dependency-update", "").With("atomic", "")
	trimmed := options.Without("dependency-update")

	assert.Equal(t, []string{"--atomic"}, trimmed.Args())
	assert.True(t, options.Has("dependency-update"))
	assert.Equal(t, 2, options.Len())
}

func TestParseOptions(t *testing.T) {
	options, err := ParseOptions([]string{"wait", "--timeout=30s", "set=a=b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--wait", "--timeout", "30s", "--set", "a=b"}, options.Args())

	_, err = ParseOptions([]string{"=x"})
	assert.Error(t, err)
	_, err = ParseOptions([]string{"--"})
	assert.Error(t, err)
}

func TestParseReleases(t *testing.T) {
	output := "NAME    \tNAMESPACE\tREVISION\tUPDATED                                \tSTATUS  \tCHART       \tAPP VERSION\n" +
		"test    \tdefault  \t1       \t2020-09-28 10:19:10.518421 +0000 UTC   \tdeployed\ttest-0.1.0  \tv1\n" +
		"test-2  \tdefault  \t3       \t2020-09-28 10:20:10.518421 +0000 UTC   \tfailed  \ttest-2-0.1.0\tv1\n"

	releases := ParseReleases(output)
	require.Len(t, releases, 2)
	assert.Equal(t, "test", releases[0].Name())
	assert.Equal(t, "2020-09-28 10:19:10.518421 +0000 UTC", releases[0]["UPDATED"])
	assert.Equal(t, "v1", releases[1]["APP VERSION"])

	assert.Len(t, FilterByName(releases, "test"), 1)
	assert.Empty(t, FilterByName(releases, "tes"))
}

func TestParseReleasesWithoutTabs(t *testing.T) {
	output := "NAME   NAMESPACE  REVISION\nweb    default    2\n"
	releases := ParseReleases(output)
	require.Len(t, releases, 1)
	assert.Equal(t, "web", releases[0].Name())
	assert.Equal(t, "2", releases[0]["REVISION"])
}

func TestParseReleasesSkipsLinesBeforeHeader(t *testing.T) {
	output := "WARNING: Kubernetes configuration file is group-readable. This is insecure. Location: /root/.kube/config\n" +
		"NAME\tNAMESPACE\tREVISION\tSTATUS\n" +
		"test\tdefault\t1\tdeployed\n"

	releases := ParseReleases(output)
	require.Len(t, releases, 1)
	assert.Equal(t, "test", releases[0].Name())
	assert.Equal(t, "deployed", releases[0]["STATUS"])
	assert.Len(t, FilterByName(releases, "test"), 1)

	assert.Empty(t, ParseReleases("WARNING: something odd\n"))
}

func TestParseReleasesHeaderOnly(t *testing.T) {
	assert.Empty(t, ParseReleases("NAME\tNAMESPACE\n"))
	assert.Empty(t, ParseReleases(""))
}

func TestErrorFactory(t *testing.T) {
	factory := NewErrorFactory(nil)
	tests := []struct {
		output string
		reason error
	}{
		{"Error: cannot re-use a name that is still in use", ErrReleaseNameInUse},
		{"Error: rendered manifests contain a resource that already exists. Unable to continue with install", ErrResourceAlreadyExists},
		{`Error: create: failed to create: namespaces "missing" not found`, ErrNamespaceNotFound},
		{"Error: unable to build kubernetes objects from release manifest: error validating \"\"", ErrManifestValidation},
		{"Error: repository name (stable) already exists, please specify a different name", ErrRepositoryAlreadyExists},
		{`Error: no repo named "stable" found`, ErrRepositoryNotFound},
		{"Error: Kubernetes cluster unreachable: connection refused", ErrClusterUnreachable},
		{"Error: found in Chart.yaml, but missing in charts/ directory: grafana", ErrDependenciesMissing},
		{`Error: UPGRADE FAILED: "test" has no deployed releases`, ErrNoDeployedReleases},
		{"Error: timed out waiting for the condition", ErrTimedOut},
	}
	for _, tt := range tests {
		t.Run(tt.reason.Error(), func(t *testing.T) {
			err := factory.GetError(tt.output)
			assert.True(t, errors.Is(err, tt.reason))
			var classified *ClassifiedError
			require.True(t, errors.As(err, &classified))
			assert.Equal(t, tt.output, classified.Output)
		})
	}

	err := factory.GetError("Error: something nobody has seen before")
	var failure *FailureError
	assert.True(t, errors.As(err, &failure))
	assert.Nil(t, factory.Classify("Error: something nobody has seen before"))
}

func TestErrorFactoryCustomPatterns(t *testing.T) {
	custom := errors.New("custom")
	factory := NewErrorFactory([]ErrorPattern{{Pattern: DefaultErrorPatterns[0].Pattern, Reason: custom}})
	assert.True(t, errors.Is(factory.GetError("cannot re-use a name that is still in use"), custom))
	assert.Nil(t, factory.Classify("Kubernetes cluster unreachable"))
}

func TestClientCommands(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClientImpl(zap.NewNop().Sugar(), runner, "helm", "monitoring", []string{"--kube-context", "kind"})
	ctx := context.Background()
	options := NewOptions().With("wait", "").With("timeout", "30s")

	require.NoError(t, client.Install(ctx, "test", "/tmp/test", options))
	require.NoError(t, client.Upgrade(ctx, "test", "/tmp/test", options))
	require.NoError(t, client.Uninstall(ctx, "test", nil))
	require.NoError(t, client.DependencyUpdate(ctx, "/tmp/test"))
	require.NoError(t, client.AddRepo(ctx, "stable", "https://charts.helm.sh/stable"))

	assert.Equal(t, [][]string{
		{"helm", "install", "test", "/tmp/test", "-n", "monitoring", "--wait", "--timeout", "30s", "--kube-context", "kind"},
		{"helm", "upgrade", "test", "/tmp/test", "-n", "monitoring", "--wait", "--timeout", "30s", "--kube-context", "kind"},
		{"helm", "uninstall", "test", "-n", "monitoring", "--kube-context", "kind"},
		{"helm", "dependency", "update", "/tmp/test", "--kube-context", "kind"},
		{"helm", "repo", "add", "stable", "https://charts.helm.sh/stable", "--kube-context", "kind"},
	}, runner.calls)
}

func TestClientWithoutNamespace(t *testing.T) {
	client := NewClientImpl(zap.NewNop().Sugar(), &fakeRunner{}, "", "", nil)
	assert.Equal(t, []string{"install", "test", "/tmp/test"}, client.InstallArgs("test", "/tmp/test", nil))
	assert.Equal(t, []string{"uninstall", "test", "--keep-history"}, client.UninstallArgs("test", NewOptions().With("keep-history", "")))
}

func TestClientList(t *testing.T) {
	runner := &fakeRunner{output: "NAME\tNAMESPACE\ntest\tdefault\n"}
	client := NewClientImpl(zap.NewNop().Sugar(), runner, "helm", "default", nil)

	releases, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, []string{"helm", "list", "-n", "default"}, runner.calls[0])
}

func TestClientListFailure(t *testing.T) {
	runner := &fakeRunner{err: &util.CommandError{Output: "Error: Kubernetes cluster unreachable", ExitCode: 1}}
	client := NewClientImpl(zap.NewNop().Sugar(), runner, "helm", "", nil)

	_, err := client.List(context.Background())
	var cmdErr *util.CommandError
	assert.True(t, errors.As(err, &cmdErr))
}
