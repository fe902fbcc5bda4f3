package kube

import (
	"github.com/devtron-labs/chart-builder/pkg/serializer"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/runtime"
)

type ObjectMeta struct {
	Name        string
	Namespace   string
	Labels      map[string]string
	Annotations map[string]string
}

func (meta *ObjectMeta) Attributes() *serializer.Map {
	return serializer.NewMap().
		Set("name", meta.Name).
		Set("namespace", meta.Namespace).
		Set("labels", meta.Labels).
		Set("annotations", meta.Annotations)
}

// Object is a generic kubernetes object. Everything apart from apiVersion,
// kind and metadata lives in Body, in the order it was set.
type Object struct {
	APIVersion string
	Kind       string
	Metadata   *ObjectMeta
	Body       *serializer.Map
}

func NewObject(apiVersion, kind string, metadata *ObjectMeta) *Object {
	return &Object{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata:   metadata,
		Body:       serializer.NewMap(),
	}
}

// With sets a top level field such as spec or data.
func (o *Object) With(key string, value interface{}) *Object {
	if o.Body == nil {
		o.Body = serializer.NewMap()
	}
	o.Body.Set(key, value)
	return o
}

func (o *Object) GetKind() string {
	return o.Kind
}

func (o *Object) Attributes() *serializer.Map {
	attributes := serializer.NewMap().
		Set("apiVersion", o.APIVersion).
		Set("kind", o.Kind)
	if o.Metadata != nil {
		attributes.Set("metadata", o.Metadata)
	}
	for _, key := range o.Body.Keys() {
		value, _ := o.Body.Get(key)
		attributes.Set(key, value)
	}
	return attributes
}

// FromStructure builds an Object from an ordered structure as produced by
// DecodeManifests. apiVersion and kind are required.
func FromStructure(m *serializer.Map) (*Object, error) {
	apiVersion, _ := m.Get("apiVersion")
	kind, _ := m.Get("kind")
	apiVersionStr, _ := apiVersion.(string)
	kindStr, _ := kind.(string)
	if kindStr == "" {
		return nil, errors.New("object has no kind")
	}
	if apiVersionStr == "" {
		return nil, errors.Errorf("object of kind %s has no apiVersion", kindStr)
	}
	obj := &Object{APIVersion: apiVersionStr, Kind: kindStr, Body: serializer.NewMap()}
	for _, key := range m.Keys() {
		if key == "apiVersion" || key == "kind" {
			continue
		}
		value, _ := m.Get(key)
		obj.Body.Set(key, value)
	}
	return obj, nil
}

// FromUnstructured builds an Object from a plain map. Keys are ordered
// alphabetically after apiVersion and kind.
func FromUnstructured(content map[string]interface{}) (*Object, error) {
	m := serializer.NewMap()
	m.Set("apiVersion", content["apiVersion"])
	m.Set("kind", content["kind"])
	if structure, ok := serializer.Clean(content).(*serializer.Map); ok {
		for _, key := range structure.Keys() {
			value, _ := structure.Get(key)
			m.Set(key, value)
		}
	}
	return FromStructure(m)
}

// FromRuntimeObject adapts a typed object, e.g. a corev1.Pod, so it can be
// placed into a chart. The object's TypeMeta must be set. Status is dropped.
func FromRuntimeObject(obj runtime.Object) (*Object, error) {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, errors.Wrap(err, "error in converting object to unstructured")
	}
	delete(content, "status")
	return FromUnstructured(content)
}
