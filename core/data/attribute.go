/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package data

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// AttributeGetter is implemented by models that resolve their own attributes.
type AttributeGetter interface {
	GetAttribute(name string) (any, bool)
}

// Attribute returns the value of a dotted attribute path such as
// "customer.address.city". Maps, AttributeGetters, structs (by field name or
// `grid` tag) and slices (by numeric segment) are traversed. A missing
// segment yields nil without error, matching how grids display absent values.
func Attribute(model any, path string) (any, error) {
	if path == "" {
		return nil, fmt.Errorf("empty attribute path")
	}
	current := model
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil, nil
		}
		next, ok, err := lookup(current, segment)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", path, err)
		}
		if !ok {
			return nil, nil
		}
		current = next
	}
	return current, nil
}

func lookup(model any, name string) (any, bool, error) {
	switch m := model.(type) {
	case AttributeGetter:
		v, ok := m.GetAttribute(name)
		return v, ok, nil
	case map[string]any:
		v, ok := m[name]
		return v, ok, nil
	case map[string]string:
		v, ok := m[name]
		return v, ok, nil
	}

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return structField(rv, name)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false, nil
		}
		return v.Interface(), true, nil
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false, nil
		}
		return rv.Index(i).Interface(), true, nil
	}
	return nil, false, fmt.Errorf("cannot read %q from %T", name, model)
}

func structField(rv reflect.Value, name string) (any, bool, error) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("grid"), ",")[0]
		if tag == "-" {
			continue
		}
		if tag == name || (tag == "" && strings.EqualFold(f.Name, name)) {
			return rv.Field(i).Interface(), true, nil
		}
	}
	return nil, false, nil
}
