package serializer

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Object is implemented by every declarative object that can appear in a
// chart. Attributes returns the object's own shallow attribute set; nested
// objects are left as they are and walked by the serializer.
type Object interface {
	Attributes() *Map
}

// Serializer prunes object graphs and encodes them as YAML.
//
// With DropFalsy unset only nil, empty strings and empty collections are
// removed. With DropFalsy set numeric zero and false are removed as well.
type Serializer struct {
	DropFalsy bool
}

var defaultSerializer = &Serializer{}

func NewSerializer(dropFalsy bool) *Serializer {
	return &Serializer{DropFalsy: dropFalsy}
}

// ToStructure returns the pruned attribute map of obj using the default rules.
func ToStructure(obj Object) *Map {
	return defaultSerializer.ToStructure(obj)
}

// Marshal encodes obj as YAML using the default rules.
func Marshal(obj Object) ([]byte, error) {
	return defaultSerializer.Marshal(obj)
}

// Encode writes v as YAML without pruning it.
func Encode(v interface{}) ([]byte, error) {
	return defaultSerializer.Encode(v)
}

// Clean prunes an arbitrary value using the default rules.
func Clean(v interface{}) interface{} {
	return defaultSerializer.Clean(v)
}

func (s *Serializer) ToStructure(obj Object) *Map {
	if isNil(obj) {
		return NewMap()
	}
	return s.cleanMap(obj.Attributes())
}

func (s *Serializer) Marshal(obj Object) ([]byte, error) {
	return s.Encode(s.ToStructure(obj))
}

// Encode writes an already cleaned structure as YAML.
func (s *Serializer) Encode(structure interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(structure); err != nil {
		return nil, errors.Wrap(err, "error in encoding yaml")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "error in encoding yaml")
	}
	return buf.Bytes(), nil
}

// Clean returns v with every empty value removed. Sequences come back as
// []interface{}, mappings and objects as *Map. A value that is empty after
// cleaning is returned as nil.
func (s *Serializer) Clean(v interface{}) interface{} {
	cleaned := s.clean(v)
	if s.isEmpty(cleaned) {
		return nil
	}
	return cleaned
}

func (s *Serializer) clean(v interface{}) interface{} {
	if isNil(v) {
		return nil
	}
	switch value := v.(type) {
	case Object:
		return s.cleanMap(value.Attributes())
	case *Map:
		return s.cleanMap(value)
	case []interface{}:
		return s.cleanList(value)
	case map[string]interface{}:
		return s.cleanGoMap(reflect.ValueOf(value))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if _, ok := v.([]byte); ok {
			return v
		}
		items := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
		return s.cleanList(items)
	case reflect.Map:
		return s.cleanGoMap(rv)
	case reflect.Ptr:
		elem := rv.Elem()
		switch elem.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return s.clean(elem.Interface())
		}
	}
	return v
}

func (s *Serializer) cleanList(items []interface{}) []interface{} {
	cleaned := make([]interface{}, 0, len(items))
	for _, item := range items {
		if s.isEmpty(item) {
			continue
		}
		c := s.clean(item)
		if s.isEmpty(c) {
			continue
		}
		cleaned = append(cleaned, c)
	}
	return cleaned
}

func (s *Serializer) cleanMap(m *Map) *Map {
	cleaned := NewMap()
	if m == nil {
		return cleaned
	}
	for _, key := range m.keys {
		value := m.values[key]
		if s.isEmpty(value) {
			continue
		}
		c := s.clean(value)
		if s.isEmpty(c) {
			continue
		}
		cleaned.Set(key, c)
	}
	return cleaned
}

// cleanGoMap walks a native map in sorted key order so output is stable.
func (s *Serializer) cleanGoMap(rv reflect.Value) *Map {
	keys := rv.MapKeys()
	names := make([]string, len(keys))
	byName := make(map[string]reflect.Value, len(keys))
	for i, k := range keys {
		name := fmt.Sprint(k.Interface())
		names[i] = name
		byName[name] = k
	}
	sort.Strings(names)
	m := NewMap()
	for _, name := range names {
		m.Set(name, rv.MapIndex(byName[name]).Interface())
	}
	return s.cleanMap(m)
}

func (s *Serializer) isEmpty(v interface{}) bool {
	if isNil(v) {
		return true
	}
	switch value := v.(type) {
	case string:
		return value == ""
	case *Map:
		return value.Len() == 0
	case bool:
		return s.DropFalsy && !value
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Bool:
		return s.DropFalsy && !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return s.DropFalsy && rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return s.DropFalsy && rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return s.DropFalsy && rv.Float() == 0
	case reflect.Ptr:
		if _, ok := v.(Object); ok {
			return false
		}
		return s.isEmpty(rv.Elem().Interface())
	}
	return false
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
