package pkg

import (
	"fmt"

	"github.com/devtron-labs/chart-builder/pkg/chart"
	"go.uber.org/zap"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
)

// HelmRepoManager reads chart repository indexes so dependencies can be
// checked before the helm binary is asked to fetch them.
type HelmRepoManager interface {
	LoadIndexFile(name string, url string) (*repo.IndexFile, error)
	ResolveDependency(dependency *chart.Dependency) (*repo.ChartVersion, error)
}

type HelmRepoManagerImpl struct {
	logger    *zap.SugaredLogger
	cachePath string
}

func NewHelmRepoManagerImpl(logger *zap.SugaredLogger, cachePath string) *HelmRepoManagerImpl {
	return &HelmRepoManagerImpl{logger: logger, cachePath: cachePath}
}

func (impl *HelmRepoManagerImpl) LoadIndexFile(name string, url string) (*repo.IndexFile, error) {
	helmRepoConfig := &repo.Entry{
		Name: name,
		URL:  url,
	}
	helmRepo, err := repo.NewChartRepository(helmRepoConfig, getter.All(&cli.EnvSettings{}))
	if err != nil {
		return nil, err
	}
	if impl.cachePath != "" {
		helmRepo.CachePath = impl.cachePath
	}
	indexFileLocation, err := helmRepo.DownloadIndexFile()
	if err != nil {
		return nil, fmt.Errorf("Looks like %q is not a valid chart repository or cannot be reached: %s", url, err.Error())
	}
	index, err := repo.LoadIndexFile(indexFileLocation)
	if err != nil {
		return nil, err
	}
	index.SortEntries()
	return index, nil
}

// ResolveDependency finds the chart version a dependency refers to. The
// version may be a semver constraint. Local dependencies resolve to nil.
func (impl *HelmRepoManagerImpl) ResolveDependency(dependency *chart.Dependency) (*repo.ChartVersion, error) {
	if dependency.IsLocal() {
		return nil, nil
	}
	index, err := impl.LoadIndexFile(dependency.RepoName, dependency.Repository)
	if err != nil {
		impl.logger.Errorw("error in loading index file", "repo", dependency.RepoName, "err", err)
		return nil, err
	}
	chartVersion, err := index.Get(dependency.Name, dependency.Version)
	if err != nil {
		impl.logger.Errorw("dependency not found in repository", "dependency", dependency.Name, "version", dependency.Version, "repo", dependency.Repository)
		return nil, fmt.Errorf("chart %s version %q not found in %s: %w", dependency.Name, dependency.Version, dependency.Repository, err)
	}
	impl.logger.Infow("resolved dependency", "dependency", dependency.Name, "version", chartVersion.Version)
	return chartVersion, nil
}
