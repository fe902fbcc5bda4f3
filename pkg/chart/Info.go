package chart

import (
	"github.com/devtron-labs/chart-builder/pkg/serializer"
	helmchart "helm.sh/helm/v3/pkg/chart"
)

type Maintainer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

func (m *Maintainer) Attributes() *serializer.Map {
	return serializer.NewMap().
		Set("name", m.Name).
		Set("email", m.Email).
		Set("url", m.URL)
}

// Info models the Chart.yaml of a generated chart.
type Info struct {
	APIVersion   string            `json:"apiVersion"`
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	AppVersion   string            `json:"appVersion,omitempty"`
	KubeVersion  string            `json:"kubeVersion,omitempty"`
	Description  string            `json:"description,omitempty"`
	Type         string            `json:"type,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	Home         string            `json:"home,omitempty"`
	Sources      []string          `json:"sources,omitempty"`
	Dependencies []*Dependency     `json:"dependencies,omitempty"`
	Maintainers  []*Maintainer     `json:"maintainers,omitempty"`
	Icon         string            `json:"icon,omitempty"`
	Deprecated   bool              `json:"deprecated,omitempty"`
	Annotations  map[string]string `json:"annotations,omitempty"`
}

func (info *Info) Attributes() *serializer.Map {
	m := serializer.NewMap().
		Set("apiVersion", info.APIVersion).
		Set("name", info.Name).
		Set("version", info.Version).
		Set("kubeVersion", info.KubeVersion).
		Set("description", info.Description).
		Set("type", info.Type).
		Set("keywords", info.Keywords).
		Set("home", info.Home).
		Set("sources", info.Sources).
		Set("dependencies", info.Dependencies).
		Set("maintainers", info.Maintainers).
		Set("icon", info.Icon).
		Set("appVersion", info.AppVersion).
		Set("annotations", info.Annotations)
	// only written when set so the default serializer does not emit false
	if info.Deprecated {
		m.Set("deprecated", true)
	}
	return m
}

// Validate runs helm's own metadata checks against the chart info.
func (info *Info) Validate() error {
	return info.helmMetadata().Validate()
}

func (info *Info) helmMetadata() *helmchart.Metadata {
	md := &helmchart.Metadata{
		APIVersion:  info.APIVersion,
		Name:        info.Name,
		Version:     info.Version,
		AppVersion:  info.AppVersion,
		KubeVersion: info.KubeVersion,
		Description: info.Description,
		Type:        info.Type,
		Keywords:    info.Keywords,
		Home:        info.Home,
		Sources:     info.Sources,
		Icon:        info.Icon,
		Deprecated:  info.Deprecated,
		Annotations: info.Annotations,
	}
	for _, m := range info.Maintainers {
		md.Maintainers = append(md.Maintainers, &helmchart.Maintainer{Name: m.Name, Email: m.Email, URL: m.URL})
	}
	for _, d := range info.Dependencies {
		md.Dependencies = append(md.Dependencies, &helmchart.Dependency{
			Name:       d.Name,
			Version:    d.Version,
			Repository: d.Repository,
			Condition:  d.Condition,
			Alias:      d.Alias,
		})
	}
	return md
}
