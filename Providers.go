package main

import (
	"github.com/devtron-labs/chart-builder/internal"
	"github.com/devtron-labs/chart-builder/pkg"
	"github.com/devtron-labs/chart-builder/pkg/chart"
	"github.com/devtron-labs/chart-builder/pkg/helm"
	"github.com/devtron-labs/chart-builder/pkg/serializer"
	"github.com/devtron-labs/chart-builder/util"
	"go.uber.org/zap"
)

func NewSerializer(cfg *internal.Configuration) *serializer.Serializer {
	return serializer.NewSerializer(cfg.PruneFalsyScalars)
}

func NewGenerator(logger *zap.SugaredLogger, s *serializer.Serializer, cfg *internal.Configuration) *chart.GeneratorImpl {
	return chart.NewGeneratorImpl(logger, s, cfg.OutputDirectory)
}

func NewHelmClient(logger *zap.SugaredLogger, commandRunner util.CommandRunner, cfg *internal.Configuration) (*helm.ClientImpl, error) {
	extraArgs, err := cfg.ExtraArgs()
	if err != nil {
		return nil, err
	}
	return helm.NewClientImpl(logger, commandRunner, cfg.HelmBinary, cfg.Namespace, extraArgs), nil
}

func NewErrorFactory() *helm.ErrorFactory {
	return helm.NewErrorFactory(helm.DefaultErrorPatterns)
}

func NewHelmRepoManager(logger *zap.SugaredLogger, cfg *internal.Configuration) *pkg.HelmRepoManagerImpl {
	return pkg.NewHelmRepoManagerImpl(logger, cfg.RepositoryCachePath)
}
