//go:build wireinject
// +build wireinject

package main

import (
	"github.com/devtron-labs/chart-builder/internal"
	"github.com/devtron-labs/chart-builder/internal/logger"
	"github.com/devtron-labs/chart-builder/pkg"
	"github.com/devtron-labs/chart-builder/pkg/chart"
	"github.com/devtron-labs/chart-builder/pkg/helm"
	"github.com/devtron-labs/chart-builder/util"
	"github.com/google/wire"
)

func InitializeApp() (*App, error) {
	wire.Build(
		NewApp,
		internal.ParseConfiguration,
		logger.NewSugardLogger,
		util.NewCommandRunnerImpl,
		wire.Bind(new(util.CommandRunner), new(*util.CommandRunnerImpl)),
		NewSerializer,
		NewGenerator,
		wire.Bind(new(chart.Generator), new(*chart.GeneratorImpl)),
		NewHelmClient,
		wire.Bind(new(helm.Client), new(*helm.ClientImpl)),
		NewErrorFactory,
		NewHelmRepoManager,
		wire.Bind(new(pkg.HelmRepoManager), new(*pkg.HelmRepoManagerImpl)),
		pkg.NewChartBuilderImpl,
		wire.Bind(new(pkg.ChartBuilder), new(*pkg.ChartBuilderImpl)),
		pkg.NewDefinitionLoaderImpl,
		wire.Bind(new(pkg.DefinitionLoader), new(*pkg.DefinitionLoaderImpl)),
	)
	return &App{}, nil
}
