package chart

import (
	"context"
	"strings"

	"github.com/devtron-labs/chart-builder/pkg/serializer"
	"github.com/pkg/errors"
)

// RepoRegistrar registers a chart repository with the package manager.
type RepoRegistrar interface {
	AddRepo(ctx context.Context, name string, url string) error
}

// Dependency is a chart pulled in from another repository. RepoName is the
// name the repository is registered under; Alias is the chart alias used in
// Chart.yaml and as the values key.
type Dependency struct {
	Name       string                 `json:"name"`
	Version    string                 `json:"version"`
	Repository string                 `json:"repository"`
	RepoName   string                 `json:"repoName,omitempty"`
	Alias      string                 `json:"alias,omitempty"`
	Condition  string                 `json:"condition,omitempty"`
	Values     map[string]interface{} `json:"values,omitempty"`
}

func (d *Dependency) Attributes() *serializer.Map {
	return serializer.NewMap().
		Set("name", d.Name).
		Set("version", d.Version).
		Set("repository", d.Repository).
		Set("condition", d.Condition).
		Set("alias", d.Alias)
}

// IsLocal reports whether the dependency is served from the file system and
// needs no repository registration.
func (d *Dependency) IsLocal() bool {
	return d.RepoName == "" || strings.HasPrefix(d.Repository, "file://")
}

func (d *Dependency) AddRepo(ctx context.Context, registrar RepoRegistrar) error {
	if d.IsLocal() {
		return nil
	}
	return registrar.AddRepo(ctx, d.RepoName, d.Repository)
}

func (d *Dependency) valuesKey() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Name
}

// ValuesYaml renders the values this dependency contributes to the parent
// chart's values.yaml, or an empty string when it has none.
func (d *Dependency) ValuesYaml() (string, error) {
	if len(d.Values) == 0 {
		return "", nil
	}
	out, err := serializer.Encode(map[string]interface{}{d.valuesKey(): d.Values})
	if err != nil {
		return "", errors.Wrapf(err, "error in rendering values for dependency %s", d.Name)
	}
	return string(out), nil
}
