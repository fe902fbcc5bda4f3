package helm

import (
	"context"

	"github.com/devtron-labs/chart-builder/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client drives the helm binary. Failures of the binary itself are returned
// as *util.CommandError; classifying them is left to the caller.
type Client interface {
	Install(ctx context.Context, name string, chartPath string, options *Options) error
	Upgrade(ctx context.Context, name string, chartPath string, options *Options) error
	Uninstall(ctx context.Context, name string, options *Options) error
	DependencyUpdate(ctx context.Context, chartPath string) error
	AddRepo(ctx context.Context, name string, url string) error
	List(ctx context.Context) ([]Release, error)
}

type ClientImpl struct {
	logger        *zap.SugaredLogger
	commandRunner util.CommandRunner
	binary        string
	namespace     string
	extraArgs     []string
}

func NewClientImpl(logger *zap.SugaredLogger, commandRunner util.CommandRunner, binary string, namespace string, extraArgs []string) *ClientImpl {
	if binary == "" {
		binary = "helm"
	}
	return &ClientImpl{
		logger:        logger,
		commandRunner: commandRunner,
		binary:        binary,
		namespace:     namespace,
		extraArgs:     extraArgs,
	}
}

func (impl *ClientImpl) namespaced(args []string) []string {
	if impl.namespace != "" {
		args = append(args, "-n", impl.namespace)
	}
	return args
}

func (impl *ClientImpl) run(ctx context.Context, args []string) (string, error) {
	args = append(args, impl.extraArgs...)
	return impl.commandRunner.Run(ctx, impl.binary, args...)
}

// InstallArgs returns the arguments of the install command, without the
// binary.
func (impl *ClientImpl) InstallArgs(name string, chartPath string, options *Options) []string {
	args := impl.namespaced([]string{"install", name, chartPath})
	return append(args, options.Args()...)
}

func (impl *ClientImpl) UpgradeArgs(name string, chartPath string, options *Options) []string {
	args := impl.namespaced([]string{"upgrade", name, chartPath})
	return append(args, options.Args()...)
}

func (impl *ClientImpl) UninstallArgs(name string, options *Options) []string {
	args := impl.namespaced([]string{"uninstall", name})
	return append(args, options.Args()...)
}

func (impl *ClientImpl) Install(ctx context.Context, name string, chartPath string, options *Options) error {
	impl.logger.Infow("installing helm chart", "name", name, "path", chartPath, "namespace", impl.namespace)
	_, err := impl.run(ctx, impl.InstallArgs(name, chartPath, options))
	return err
}

func (impl *ClientImpl) Upgrade(ctx context.Context, name string, chartPath string, options *Options) error {
	impl.logger.Infow("upgrading helm chart", "name", name, "path", chartPath, "namespace", impl.namespace)
	_, err := impl.run(ctx, impl.UpgradeArgs(name, chartPath, options))
	return err
}

func (impl *ClientImpl) Uninstall(ctx context.Context, name string, options *Options) error {
	impl.logger.Infow("uninstalling helm chart", "name", name, "namespace", impl.namespace)
	_, err := impl.run(ctx, impl.UninstallArgs(name, options))
	return err
}

func (impl *ClientImpl) DependencyUpdate(ctx context.Context, chartPath string) error {
	impl.logger.Infow("updating chart dependencies", "path", chartPath)
	_, err := impl.run(ctx, []string{"dependency", "update", chartPath})
	return err
}

func (impl *ClientImpl) AddRepo(ctx context.Context, name string, url string) error {
	impl.logger.Infow("adding helm repository", "name", name, "url", url)
	_, err := impl.run(ctx, []string{"repo", "add", name, url})
	return err
}

func (impl *ClientImpl) List(ctx context.Context) ([]Release, error) {
	output, err := impl.run(ctx, impl.namespaced([]string{"list"}))
	if err != nil {
		impl.logger.Errorw("error in listing helm releases", "err", err)
		return nil, errors.Wrap(err, "error in listing helm releases")
	}
	return ParseReleases(output), nil
}
