package pkg

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devtron-labs/chart-builder/pkg/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testIndex = `apiVersion: v1
entries:
  grafana:
  - apiVersion: v2
    name: grafana
    version: 5.5.2
    appVersion: 7.1.1
    urls:
    - https://charts.example.com/grafana-5.5.2.tgz
  - apiVersion: v2
    name: grafana
    version: 5.4.0
    appVersion: 7.0.3
    urls:
    - https://charts.example.com/grafana-5.4.0.tgz
generated: "2021-01-01T00:00:00Z"
`

func newIndexServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/index.yaml" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testIndex)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestRepoManager(t *testing.T) *HelmRepoManagerImpl {
	return NewHelmRepoManagerImpl(zap.NewNop().Sugar(), t.TempDir())
}

func TestLoadIndexFile(t *testing.T) {
	server := newIndexServer(t)

	index, err := newTestRepoManager(t).LoadIndexFile("stable", server.URL)
	require.NoError(t, err)
	require.Len(t, index.Entries["grafana"], 2)
	assert.Equal(t, "5.5.2", index.Entries["grafana"][0].Version)
}

func TestResolveDependency(t *testing.T) {
	server := newIndexServer(t)
	manager := newTestRepoManager(t)

	tests := []struct {
		version string
		want    string
	}{
		{"5.5.2", "5.5.2"},
		{"~5.4.0", "5.4.0"},
		{">=5.0.0", "5.5.2"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			dependency := &chart.Dependency{Name: "grafana", Version: tt.version, Repository: server.URL, RepoName: "stable"}
			chartVersion, err := manager.ResolveDependency(dependency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chartVersion.Version)
		})
	}
}

func TestResolveDependencyMissingVersion(t *testing.T) {
	server := newIndexServer(t)
	dependency := &chart.Dependency{Name: "grafana", Version: "9.9.9", Repository: server.URL, RepoName: "stable"}

	_, err := newTestRepoManager(t).ResolveDependency(dependency)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chart version found")
	assert.Contains(t, err.Error(), `chart grafana version "9.9.9" not found`)
}

func TestResolveDependencyUnreachableRepository(t *testing.T) {
	server := newIndexServer(t)
	dependency := &chart.Dependency{Name: "grafana", Version: "5.5.2", Repository: server.URL + "/missing", RepoName: "stable"}

	_, err := newTestRepoManager(t).ResolveDependency(dependency)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a valid chart repository")
}

func TestResolveLocalDependency(t *testing.T) {
	dependency := &chart.Dependency{Name: "common", Version: "0.1.0", Repository: "file://../common"}

	chartVersion, err := newTestRepoManager(t).ResolveDependency(dependency)
	require.NoError(t, err)
	assert.Nil(t, chartVersion)
}
