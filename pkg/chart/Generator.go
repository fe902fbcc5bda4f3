package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devtron-labs/chart-builder/pkg/serializer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"helm.sh/helm/v3/pkg/chart/loader"
)

const (
	MetadataFile = "Chart.yaml"
	ValuesFile   = "values.yaml"
	TemplatesDir = "templates"
)

// Object is a declarative object that can be written as a chart template.
type Object interface {
	serializer.Object
	GetKind() string
}

type Generator interface {
	Generate(info *Info, objects []Object) (chartPath string, err error)
	Delete(info *Info) error
	ChartPath(info *Info) (string, error)
	Verify(info *Info) error
}

type GeneratorImpl struct {
	logger          *zap.SugaredLogger
	serializer      *serializer.Serializer
	outputDirectory string
}

func NewGeneratorImpl(logger *zap.SugaredLogger, serializer *serializer.Serializer, outputDirectory string) *GeneratorImpl {
	return &GeneratorImpl{
		logger:          logger,
		serializer:      serializer,
		outputDirectory: outputDirectory,
	}
}

func (impl *GeneratorImpl) chartDirectory(info *Info) string {
	return filepath.Join(impl.outputDirectory, info.Name)
}

func (impl *GeneratorImpl) ChartPath(info *Info) (string, error) {
	return filepath.Abs(impl.chartDirectory(info))
}

// Generate writes the chart for info and objects, replacing any previous
// directory of the same name, and returns the absolute chart path.
func (impl *GeneratorImpl) Generate(info *Info, objects []Object) (string, error) {
	if info.Name == "" {
		return "", errors.New("chart name is required")
	}
	chartDir := impl.chartDirectory(info)
	if err := impl.Delete(info); err != nil {
		return "", err
	}
	templatesDir := filepath.Join(chartDir, TemplatesDir)
	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		return "", errors.Wrapf(err, "error in creating templates directory %s", templatesDir)
	}

	chartYaml, err := impl.serializer.Marshal(info)
	if err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(chartDir, MetadataFile), chartYaml); err != nil {
		return "", err
	}

	kindCount := make(map[string]int)
	for _, object := range objects {
		kind := object.GetKind()
		n := kindCount[kind]
		kindCount[kind] = n + 1
		content, err := impl.serializer.Marshal(object)
		if err != nil {
			return "", errors.Wrapf(err, "error in serializing %s-%d", kind, n)
		}
		if err := writeFile(filepath.Join(templatesDir, TemplateFileName(kind, n)), content); err != nil {
			return "", err
		}
	}

	values, err := ValuesYaml(info)
	if err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(chartDir, ValuesFile), []byte(values)); err != nil {
		return "", err
	}
	impl.logger.Infow("generated chart", "name", info.Name, "dir", chartDir, "templates", len(objects))
	return impl.ChartPath(info)
}

func (impl *GeneratorImpl) Delete(info *Info) error {
	chartDir := impl.chartDirectory(info)
	if err := os.RemoveAll(chartDir); err != nil {
		return errors.Wrapf(err, "error in removing chart directory %s", chartDir)
	}
	return nil
}

// Verify loads the generated chart back through helm's loader.
func (impl *GeneratorImpl) Verify(info *Info) error {
	chartDir := impl.chartDirectory(info)
	c, err := loader.LoadDir(chartDir)
	if err != nil {
		return errors.Wrapf(err, "generated chart %s failed to load", chartDir)
	}
	if c.Name() != info.Name {
		return errors.Errorf("generated chart has name %q, expected %q", c.Name(), info.Name)
	}
	return nil
}

func TemplateFileName(kind string, n int) string {
	return fmt.Sprintf("%s-%d.yaml", kind, n)
}

// ValuesYaml concatenates each dependency's values fragment in order, each
// followed by a blank line.
func ValuesYaml(info *Info) (string, error) {
	var sb strings.Builder
	for _, dependency := range info.Dependencies {
		fragment, err := dependency.ValuesYaml()
		if err != nil {
			return "", err
		}
		sb.WriteString(fragment)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func writeFile(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "error in writing %s", path)
	}
	return nil
}
