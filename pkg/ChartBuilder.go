package pkg

import (
	"context"

	"github.com/devtron-labs/chart-builder/internal"
	"github.com/devtron-labs/chart-builder/pkg/chart"
	"github.com/devtron-labs/chart-builder/pkg/helm"
	"github.com/devtron-labs/chart-builder/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DependencyUpdateOption = "dependency-update"

type ChartBuilder interface {
	GenerateChart(chart *Chart) (chartPath string, err error)
	UpdateDependencies(ctx context.Context, chart *Chart) error
	InstallChart(ctx context.Context, chart *Chart, options *helm.Options) error
	UpgradeChart(ctx context.Context, chart *Chart, options *helm.Options) error
	UninstallChart(ctx context.Context, name string, options *helm.Options) error
	IsInstalled(ctx context.Context, name string) (bool, error)
	ListReleases(ctx context.Context) ([]helm.Release, error)
}

type ChartBuilderImpl struct {
	logger             *zap.SugaredLogger
	generator          chart.Generator
	helmClient         helm.Client
	helmRepoManager    HelmRepoManager
	errorFactory       *helm.ErrorFactory
	keepChart          bool
	verifyDependencies bool
}

func NewChartBuilderImpl(logger *zap.SugaredLogger,
	generator chart.Generator,
	helmClient helm.Client,
	helmRepoManager HelmRepoManager,
	errorFactory *helm.ErrorFactory,
	configuration *internal.Configuration) *ChartBuilderImpl {
	return &ChartBuilderImpl{
		logger:             logger,
		generator:          generator,
		helmClient:         helmClient,
		helmRepoManager:    helmRepoManager,
		errorFactory:       errorFactory,
		keepChart:          configuration.KeepChart,
		verifyDependencies: configuration.VerifyDependencies,
	}
}

func (impl *ChartBuilderImpl) GenerateChart(chart *Chart) (string, error) {
	if chart == nil || chart.Info == nil {
		return "", errors.New("chart info is required")
	}
	chartPath, err := impl.generator.Generate(chart.Info, chart.Objects)
	if err != nil {
		impl.logger.Errorw("error in generating chart", "name", chart.Name(), "err", err)
		return "", err
	}
	if err := impl.generator.Verify(chart.Info); err != nil {
		impl.logger.Errorw("error in verifying generated chart", "name", chart.Name(), "err", err)
		return "", err
	}
	return chartPath, nil
}

func (impl *ChartBuilderImpl) UpdateDependencies(ctx context.Context, chart *Chart) error {
	impl.logger.Infow("adding dependencies", "name", chart.Name(), "dependencies", len(chart.Info.Dependencies))
	for _, dependency := range chart.Info.Dependencies {
		if impl.verifyDependencies {
			if _, err := impl.helmRepoManager.ResolveDependency(dependency); err != nil {
				return err
			}
		}
		if err := dependency.AddRepo(ctx, impl.helmClient); err != nil {
			impl.logger.Errorw("error in adding dependency repository", "dependency", dependency.Name, "repo", dependency.RepoName, "err", err)
			return errors.Wrapf(impl.classify(err), "error in adding repository for dependency %s", dependency.Name)
		}
	}
	return nil
}

func (impl *ChartBuilderImpl) InstallChart(ctx context.Context, chart *Chart, options *helm.Options) error {
	chartPath, err := impl.GenerateChart(chart)
	if err != nil {
		return err
	}
	if err := impl.UpdateDependencies(ctx, chart); err != nil {
		return err
	}
	err = impl.helmClient.Install(ctx, chart.Name(), chartPath, options)
	if err != nil {
		return impl.handleInstallFailure(ctx, chart.Name(), err)
	}
	if !impl.keepChart {
		if err := impl.generator.Delete(chart.Info); err != nil {
			return err
		}
	}
	return nil
}

// handleInstallFailure classifies the failure. An unrecognised failure of a
// release that still got recorded is uninstalled before it is reported.
func (impl *ChartBuilderImpl) handleInstallFailure(ctx context.Context, name string, err error) error {
	output, ok := commandOutput(err)
	if !ok {
		return err
	}
	if classified := impl.errorFactory.Classify(output); classified != nil {
		impl.logger.Errorw("error in installing chart", "name", name, "err", classified)
		return classified
	}
	installed, listErr := impl.IsInstalled(ctx, name)
	if listErr != nil {
		return listErr
	}
	if installed {
		impl.logger.Warnw("removing release left behind by failed install", "name", name)
		if err := impl.UninstallChart(ctx, name, nil); err != nil {
			return err
		}
	}
	return &helm.FailureError{Output: output}
}

func (impl *ChartBuilderImpl) UpgradeChart(ctx context.Context, chart *Chart, options *helm.Options) error {
	if err := impl.checkInstalled(ctx, chart.Name()); err != nil {
		return err
	}
	chartPath, err := impl.GenerateChart(chart)
	if err != nil {
		return err
	}
	if err := impl.UpdateDependencies(ctx, chart); err != nil {
		return err
	}
	if options.Has(DependencyUpdateOption) {
		if err := impl.helmClient.DependencyUpdate(ctx, chartPath); err != nil {
			impl.logger.Errorw("error in updating chart dependencies", "name", chart.Name(), "err", err)
			return impl.classify(err)
		}
		options = options.Without(DependencyUpdateOption)
	}
	if err := impl.helmClient.Upgrade(ctx, chart.Name(), chartPath, options); err != nil {
		impl.logger.Errorw("error in upgrading chart", "name", chart.Name(), "err", err)
		return impl.classify(err)
	}
	return nil
}

func (impl *ChartBuilderImpl) UninstallChart(ctx context.Context, name string, options *helm.Options) error {
	if err := impl.checkInstalled(ctx, name); err != nil {
		return err
	}
	if err := impl.helmClient.Uninstall(ctx, name, options); err != nil {
		impl.logger.Errorw("error in uninstalling chart", "name", name, "err", err)
		return impl.classify(err)
	}
	return nil
}

func (impl *ChartBuilderImpl) IsInstalled(ctx context.Context, name string) (bool, error) {
	releases, err := impl.helmClient.List(ctx)
	if err != nil {
		return false, err
	}
	return len(helm.FilterByName(releases, name)) > 0, nil
}

func (impl *ChartBuilderImpl) ListReleases(ctx context.Context) ([]helm.Release, error) {
	return impl.helmClient.List(ctx)
}

func (impl *ChartBuilderImpl) checkInstalled(ctx context.Context, name string) error {
	impl.logger.Infow("checking if helm chart is installed", "name", name)
	installed, err := impl.IsInstalled(ctx, name)
	if err != nil {
		return err
	}
	if !installed {
		return &NotInstalledError{Name: name}
	}
	return nil
}

func (impl *ChartBuilderImpl) classify(err error) error {
	output, ok := commandOutput(err)
	if !ok {
		return err
	}
	return impl.errorFactory.GetError(output)
}

func commandOutput(err error) (string, bool) {
	var cmdErr *util.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Output, true
	}
	return "", false
}
