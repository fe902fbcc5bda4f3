package pkg

import (
	"math"
	"os"
	"path/filepath"

	"github.com/devtron-labs/chart-builder/pkg/chart"
	"github.com/devtron-labs/chart-builder/pkg/kube"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Definition is the on-disk description of a chart: its metadata plus the
// manifest files whose objects become templates. Manifest paths are relative
// to the definition file.
type Definition struct {
	Chart     *chart.Info `json:"chart"`
	Manifests []string    `json:"manifests,omitempty"`
}

type DefinitionLoader interface {
	Load(path string) (*Chart, error)
}

type DefinitionLoaderImpl struct {
	logger *zap.SugaredLogger
}

func NewDefinitionLoaderImpl(logger *zap.SugaredLogger) *DefinitionLoaderImpl {
	return &DefinitionLoaderImpl{logger: logger}
}

func (impl *DefinitionLoaderImpl) Load(path string) (*Chart, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error in reading chart definition %s", path)
	}
	definition := &Definition{}
	if err := yaml.Unmarshal(content, definition); err != nil {
		return nil, errors.Wrapf(err, "error in parsing chart definition %s", path)
	}
	if definition.Chart == nil {
		return nil, errors.Errorf("chart definition %s has no chart section", path)
	}
	if err := definition.Chart.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid chart in %s", path)
	}

	for _, dependency := range definition.Chart.Dependencies {
		if dependency.Values != nil {
			dependency.Values = wholeNumbers(dependency.Values).(map[string]interface{})
		}
	}

	result := &Chart{Info: definition.Chart}
	baseDir := filepath.Dir(path)
	for _, manifest := range definition.Manifests {
		manifestPath := manifest
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(baseDir, manifestPath)
		}
		objects, err := impl.loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		result.Objects = append(result.Objects, objects...)
	}
	impl.logger.Infow("loaded chart definition", "path", path, "name", result.Name(), "objects", len(result.Objects))
	return result, nil
}

func (impl *DefinitionLoaderImpl) loadManifest(path string) ([]chart.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error in opening manifest %s", path)
	}
	defer f.Close()
	objects, err := kube.DecodeManifests(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error in loading manifest %s", path)
	}
	out := make([]chart.Object, 0, len(objects))
	for _, o := range objects {
		out = append(out, o)
	}
	return out, nil
}

// json decoding turns every number into a float64; integral ones are turned
// back into integers so values.yaml keeps them as written.
func wholeNumbers(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		for k, item := range value {
			value[k] = wholeNumbers(item)
		}
		return value
	case []interface{}:
		for i, item := range value {
			value[i] = wholeNumbers(item)
		}
		return value
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
			return int64(value)
		}
		return value
	}
	return v
}
