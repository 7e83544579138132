// Package docvalue converts arbitrary Go values into the canonical document
// tree shape: map[string]any for mappings, []any for sequences and plain
// scalars everywhere else.
package docvalue

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Canonical returns v rewritten into document form. Mapping keys are turned
// into strings, so `200:` decoded by YAML as an int key becomes "200".
func Canonical(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(t))
		for key, item := range t {
			res[key] = Canonical(item)
		}
		return res
	case []any:
		res := make([]any, 0, len(t))
		for _, item := range t {
			res = append(res, Canonical(item))
		}
		return res
	case string, bool, int, int64, float64:
		return t
	}
	return transformValue(reflect.ValueOf(v))
}

func transformValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Struct:
		return transformStruct(v)
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return transformValue(v.Elem())
	case reflect.Map:
		if v.IsNil() {
			return map[string]any{}
		}
		return transformMap(v)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []any{}
		}
		return transformSlice(v)
	}

	if v.CanInterface() {
		return v.Interface()
	}
	return nil
}

func transformSlice(v reflect.Value) []any {
	res := make([]any, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		res = append(res, transformValue(v.Index(i)))
	}
	return res
}

func transformMap(v reflect.Value) map[string]any {
	res := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key := cast.ToString(transformValue(iter.Key()))
		res[key] = transformValue(iter.Value())
	}
	return res
}

func transformStruct(v reflect.Value) map[string]any {
	res := make(map[string]any)
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty := fieldName(field)
		if name == "-" {
			continue
		}
		value := v.Field(i)
		if omitEmpty && value.IsZero() {
			continue
		}
		res[name] = transformValue(value)
	}
	return res
}

// fieldName reads the yaml tag of field, falling back to the Go name.
func fieldName(field reflect.StructField) (string, bool) {
	name, opts, _ := strings.Cut(field.Tag.Get("yaml"), ",")
	omitEmpty := strings.Contains(opts, "omitempty")
	if name != "" {
		return name, omitEmpty
	}
	return field.Name, omitEmpty
}
