package internal

import (
	"github.com/caarlos0/env"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

type Configuration struct {
	HelmBinary        string `env:"HELM_BINARY" envDefault:"helm"`
	OutputDirectory   string `env:"CHART_OUTPUT_DIRECTORY" envDefault:"."`
	KeepChart         bool   `env:"KEEP_CHART" envDefault:"false"`
	Namespace         string `env:"HELM_NAMESPACE" envDefault:""` // empty means no -n flag is passed
	PruneFalsyScalars bool   `env:"PRUNE_FALSY_SCALARS" envDefault:"false"`
	HelmExtraArgs     string `env:"HELM_EXTRA_ARGS" envDefault:""` // e.g. --kube-context kind --debug
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	// VerifyDependencies checks every dependency against its repository index before helm runs
	VerifyDependencies  bool   `env:"VERIFY_DEPENDENCIES" envDefault:"false"`
	RepositoryCachePath string `env:"HELM_REPOSITORY_CACHE" envDefault:""`
}

func ParseConfiguration() (*Configuration, error) {
	cfg := &Configuration{}
	err := env.Parse(cfg)
	return cfg, err
}

// ExtraArgs splits HelmExtraArgs the way a shell would, without expanding
// anything.
func (cfg *Configuration) ExtraArgs() ([]string, error) {
	if cfg.HelmExtraArgs == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(cfg.HelmExtraArgs)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid HELM_EXTRA_ARGS %q", cfg.HelmExtraArgs)
	}
	return args, nil
}
